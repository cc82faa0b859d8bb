package audio

import (
	"errors"
	"sync"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/constant"
)

func silentConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	cfg.SampleRate = 8000
	return cfg
}

// TestEngineSilentMode verifies a disabled engine runs on the discarding sink
func TestEngineSilentMode(t *testing.T) {
	e := NewEngine(silentConfig(), clock.NewMock())

	if e.IsRunning() {
		t.Error("Expected engine idle before start")
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	if !e.IsRunning() {
		t.Error("Expected engine running")
	}
	if !e.IsSilent() {
		t.Error("Expected silent mode")
	}
	if e.Output() != "null" {
		t.Errorf("Expected null output, got %q", e.Output())
	}
	if e.Nudge() {
		t.Error("Expected nudge to do nothing while disabled")
	}
}

// TestEngineDoubleStart verifies a second Start is rejected
func TestEngineDoubleStart(t *testing.T) {
	e := NewEngine(silentConfig(), clock.NewMock())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.Start(); err == nil {
		t.Error("Expected error on second start")
	}
	e.Stop()
	e.Stop()

	if e.IsRunning() {
		t.Error("Expected engine stopped")
	}
	if e.Output() != "" {
		t.Errorf("Expected no output after stop, got %q", e.Output())
	}
}

// TestEngineMute verifies mute reaches the bus multiplier
func TestEngineMute(t *testing.T) {
	cfg := silentConfig()
	cfg.StartMuted = true
	e := NewEngine(cfg, clock.NewMock())

	if !e.IsMuted() || e.Bus().Multiplier() != 0 {
		t.Error("Expected engine to start muted")
	}
	if e.ToggleMute() {
		t.Error("Expected unmuted after toggle")
	}
	if got := e.Bus().Multiplier(); got != cfg.MasterVolume {
		t.Errorf("Expected multiplier %f, got %f", cfg.MasterVolume, got)
	}
}

// TestAudioServiceLifecycle verifies the service wraps the engine
func TestAudioServiceLifecycle(t *testing.T) {
	svc := NewService(silentConfig(), clock.NewMock())
	if svc.Name() != "audio" {
		t.Errorf("Expected name audio, got %q", svc.Name())
	}
	if err := svc.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !svc.Engine().IsRunning() {
		t.Error("Expected engine running")
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

// fakeSink is an output that accepts or refuses Start
type fakeSink struct {
	name    string
	backend BackendType
	fail    error
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

func newFakeSink(name string, backend BackendType, fail error) *fakeSink {
	return &fakeSink{name: name, backend: backend, fail: fail, errs: make(chan error, 1), done: make(chan struct{})}
}

func (f *fakeSink) Start(beep.Streamer) error { return f.fail }
func (f *fakeSink) Close()                    { f.once.Do(func() { close(f.done) }) }
func (f *fakeSink) Name() string              { return f.name }
func (f *fakeSink) Backend() BackendType      { return f.backend }
func (f *fakeSink) Errors() <-chan error      { return f.errs }
func (f *fakeSink) Done() <-chan struct{}     { return f.done }

// TestEngineNudgeRetry verifies an enabled silent engine retries once per gap and never reopens the speaker
func TestEngineNudgeRetry(t *testing.T) {
	cfg := silentConfig()
	cfg.Enabled = true
	clk := clock.NewMock()
	e := NewEngine(cfg, clk)

	var speakerCalls, pipeCalls int
	pipeReady := false
	e.open.speaker = func(beep.SampleRate) sink {
		speakerCalls++
		return newFakeSink("speaker", BackendSpeaker, errors.New("no device"))
	}
	e.open.pipe = func(beep.SampleRate) (sink, error) {
		pipeCalls++
		if !pipeReady {
			return nil, ErrNoAudioBackend
		}
		return newFakeSink("pacat", BackendPulse, nil), nil
	}

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	if !e.IsSilent() || e.Backend() != BackendNull {
		t.Fatalf("Expected silent start on null sink, got %q", e.Output())
	}
	if speakerCalls != 1 || pipeCalls != 1 {
		t.Errorf("Expected one attempt each, got speaker %d pipe %d", speakerCalls, pipeCalls)
	}

	if e.Nudge() {
		t.Error("Expected nudge inside the retry gap to do nothing")
	}
	if pipeCalls != 1 {
		t.Errorf("Expected no retry inside the gap, got %d pipe attempts", pipeCalls)
	}

	clk.Add(constant.AudioRetryGap)
	if e.Nudge() {
		t.Error("Expected retry to fail while no backend exists")
	}
	if pipeCalls != 2 {
		t.Errorf("Expected second pipe attempt, got %d", pipeCalls)
	}

	pipeReady = true
	clk.Add(constant.AudioRetryGap / 2)
	if e.Nudge() {
		t.Error("Expected nudge skipped half a gap after the last attempt")
	}

	clk.Add(constant.AudioRetryGap / 2)
	if !e.Nudge() {
		t.Fatal("Expected retry to bring output live")
	}
	if speakerCalls != 1 {
		t.Errorf("Expected speaker tried once, got %d", speakerCalls)
	}
	if e.IsSilent() || e.Output() != "pacat" || e.Backend() != BackendPulse {
		t.Errorf("Expected live pacat output, got %q silent=%v", e.Output(), e.IsSilent())
	}
	if e.Nudge() {
		t.Error("Expected nudge to do nothing once live")
	}
}
