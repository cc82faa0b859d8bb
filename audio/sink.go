package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
)

// sink pulls the master bus and delivers it to an output
type sink interface {
	Start(src beep.Streamer) error
	Close()
	Name() string
	Backend() BackendType
	// Errors reports a fatal output failure at most once
	Errors() <-chan error
	// Done is closed by Close
	Done() <-chan struct{}
}

// speakerSink plays through the beep speaker (oto device)
type speakerSink struct {
	rate beep.SampleRate
	errs chan error
	done chan struct{}
	once sync.Once
}

func newSpeakerSink(rate beep.SampleRate) *speakerSink {
	return &speakerSink{rate: rate, errs: make(chan error, 1), done: make(chan struct{})}
}

func (s *speakerSink) Start(src beep.Streamer) error {
	if err := speaker.Init(s.rate, s.rate.N(constant.SpeakerBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(src)
	return nil
}

func (s *speakerSink) Close() {
	s.once.Do(func() {
		speaker.Clear()
		speaker.Close()
		close(s.done)
	})
}

func (s *speakerSink) Name() string          { return "speaker" }
func (s *speakerSink) Backend() BackendType  { return BackendSpeaker }
func (s *speakerSink) Errors() <-chan error  { return s.errs }
func (s *speakerSink) Done() <-chan struct{} { return s.done }

// pipeSink writes s16le stereo to a CLI player's stdin or an OSS device on a fixed tick
type pipeSink struct {
	backend *BackendConfig
	rate    beep.SampleRate

	cmd *exec.Cmd
	out io.WriteCloser

	stop    chan struct{}
	stopped atomic.Bool
	errs    chan error
	wg      sync.WaitGroup
}

func newPipeSink(backend *BackendConfig, rate beep.SampleRate) *pipeSink {
	return &pipeSink{
		backend: backend,
		rate:    rate,
		stop:    make(chan struct{}),
		errs:    make(chan error, 1),
	}
}

func (p *pipeSink) Start(src beep.Streamer) error {
	if p.backend.Type == BackendOSS {
		f, err := os.OpenFile(p.backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", p.backend.Path, err)
		}
		p.out = f
	} else {
		cmd := exec.Command(p.backend.Path, p.backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("%s stdin: %w", p.backend.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return fmt.Errorf("%s start: %w", p.backend.Name, err)
		}
		p.cmd = cmd
		p.out = stdin

		p.wg.Add(1)
		core.Go(p.monitorProcess)
	}

	p.wg.Add(1)
	core.Go(func() { p.loop(src) })
	return nil
}

// monitorProcess watches for subprocess exit
func (p *pipeSink) monitorProcess() {
	defer p.wg.Done()
	if err := p.cmd.Wait(); err != nil && !p.stopped.Load() {
		p.fail(fmt.Errorf("%s exited: %w", p.backend.Name, err))
	}
}

// loop writes one buffer per tick, silence included, to keep the pipe alive
func (p *pipeSink) loop(src beep.Streamer) {
	defer p.wg.Done()

	ticker := time.NewTicker(constant.AudioBufferDuration)
	defer ticker.Stop()

	frames := p.rate.N(constant.AudioBufferDuration)
	buf := make([][2]float64, frames)
	outBytes := make([]byte, frames*constant.AudioBytesPerFrame)

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			src.Stream(buf)
			floatToBytes(buf, outBytes)
			if _, err := p.out.Write(outBytes); err != nil {
				if !p.stopped.Load() {
					p.fail(fmt.Errorf("%w: %v", ErrPipeClosed, err))
				}
				return
			}
		}
	}
}

func (p *pipeSink) fail(err error) {
	select {
	case p.errs <- err:
	default:
	}
}

func (p *pipeSink) Close() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	close(p.stop)
	if p.out != nil {
		p.out.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(constant.AudioDrainTimeout):
	}
}

func (p *pipeSink) Name() string          { return p.backend.Name }
func (p *pipeSink) Backend() BackendType  { return p.backend.Type }
func (p *pipeSink) Errors() <-chan error  { return p.errs }
func (p *pipeSink) Done() <-chan struct{} { return p.stop }

// nullSink drains the bus in real time and discards it, so fades, one-shots
// and retirements progress identically while no device is available
type nullSink struct {
	rate beep.SampleRate
	stop chan struct{}
	once sync.Once
	errs chan error
}

func newNullSink(rate beep.SampleRate) *nullSink {
	return &nullSink{rate: rate, stop: make(chan struct{}), errs: make(chan error)}
}

func (n *nullSink) Start(src beep.Streamer) error {
	core.Go(func() {
		ticker := time.NewTicker(constant.AudioBufferDuration)
		defer ticker.Stop()
		buf := make([][2]float64, n.rate.N(constant.AudioBufferDuration))
		for {
			select {
			case <-n.stop:
				return
			case <-ticker.C:
				src.Stream(buf)
			}
		}
	})
	return nil
}

func (n *nullSink) Close()                { n.once.Do(func() { close(n.stop) }) }
func (n *nullSink) Name() string          { return "null" }
func (n *nullSink) Backend() BackendType  { return BackendNull }
func (n *nullSink) Errors() <-chan error  { return n.errs }
func (n *nullSink) Done() <-chan struct{} { return n.stop }

// floatToBytes converts stereo float frames to interleaved int16 LE bytes
// Input is already soft-limited by the bus; this only hard clips
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		idx := i * constant.AudioBytesPerFrame
		for ch, v := range frame {
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}
			binary.LittleEndian.PutUint16(out[idx+ch*2:], uint16(int16(v*32767)))
		}
	}
}
