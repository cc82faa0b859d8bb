package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter"
)

// Library stores decoded samples by name; absence is a valid state
type Library struct {
	dir   string
	rate  beep.SampleRate
	files map[string]string
	seams map[string]time.Duration

	mu      sync.RWMutex
	samples map[string]*PCM
	failed  map[string]error
}

// NewLibrary creates a library over the standard catalog in dir
func NewLibrary(dir string, rate beep.SampleRate) *Library {
	return &Library{
		dir:   dir,
		rate:  rate,
		files: parameter.SampleFiles,
		seams: map[string]time.Duration{
			parameter.SampleCrickets: parameter.CricketLoopFade,
			parameter.SampleWind:     parameter.WindLoopFade,
			parameter.SampleWater:    parameter.WaterLoopFade,
		},
		samples: make(map[string]*PCM),
		failed:  make(map[string]error),
	}
}

// LoadAll decodes the catalog in parallel and returns when every load settles or ctx ends
// Loads still in flight after ctx ends keep running and publish when done
func (l *Library) LoadAll(ctx context.Context) error {
	done := make(chan struct{})

	core.Go(func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(constant.SampleLoadConcurrency)
		for name, stem := range l.files {
			g.Go(func() error {
				l.load(name, stem)
				return nil
			})
		}
		g.Wait()
	})

	select {
	case <-done:
		l.mu.RLock()
		log.Printf("SAMPLES: %d loaded, %d failed", len(l.samples), len(l.failed))
		l.mu.RUnlock()
		return nil
	case <-ctx.Done():
		log.Printf("SAMPLES: preload wait ended: %v", ctx.Err())
		return ctx.Err()
	}
}

// load decodes one asset; failure is recorded and logged, never fatal
func (l *Library) load(name, stem string) {
	pcm, err := l.decode(name, stem)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.failed[name] = err
		log.Printf("SAMPLES: %s unavailable, synthesis fallback: %v", name, err)
		return
	}
	l.samples[name] = pcm
	delete(l.failed, name)
}

func (l *Library) decode(name, stem string) (*PCM, error) {
	path, err := l.resolve(stem)
	if err != nil {
		return nil, err
	}

	pcm, err := DecodeFile(path, l.rate)
	if err != nil {
		return nil, err
	}
	if pcm.Len() == 0 {
		return nil, fmt.Errorf("%s: empty sample", filepath.Base(path))
	}
	pcm.Name = name

	// Seams are stitched before publication; published PCM is never written again
	if fade, ok := l.seams[name]; ok {
		pcm.LoopStart = CrossfadeLoop(pcm.Data, l.rate.N(fade))
	}
	return pcm, nil
}

// resolve finds the first existing file for stem in extension order
func (l *Library) resolve(stem string) (string, error) {
	for _, ext := range parameter.SampleExtensions {
		path := filepath.Join(l.dir, stem+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", stem, l.dir, os.ErrNotExist)
}

// Get implements SampleSource
func (l *Library) Get(name string) (*PCM, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pcm, ok := l.samples[name]
	return pcm, ok
}

// Put publishes an externally decoded sample
func (l *Library) Put(pcm *PCM) {
	if pcm == nil {
		return
	}
	l.mu.Lock()
	l.samples[pcm.Name] = pcm
	delete(l.failed, pcm.Name)
	l.mu.Unlock()
}

// Loaded returns the names of available samples, sorted
func (l *Library) Loaded() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.samples))
	for name := range l.samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Failures returns a copy of the per-asset load errors
func (l *Library) Failures() map[string]error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]error, len(l.failed))
	for k, v := range l.failed {
		out[k] = v
	}
	return out
}
