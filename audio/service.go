package audio

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/constant"
)

// AudioService wraps Engine as a Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	config *AudioConfig
	clock  clock.Clock
	engine *Engine
	failed atomic.Bool
}

// NewService creates a new audio service
func NewService(cfg *AudioConfig, clk clock.Clock) *AudioService {
	return &AudioService{config: cfg, clock: clk}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *AudioService) Init() error {
	s.engine = NewEngine(s.config, s.clock)
	return nil
}

// Start implements Service
// A missing device leaves the engine silent rather than failing startup
func (s *AudioService) Start() error {
	if err := s.engine.Start(); err != nil {
		s.failed.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.engine != nil {
		s.engine.Stop()
	}
	return nil
}

// Engine returns the engine, valid after Init
func (s *AudioService) Engine() *Engine {
	return s.engine
}

// SampleService preloads the sample catalog with a bounded wait
type SampleService struct {
	library *Library
	timeout time.Duration
	cancel  context.CancelFunc
}

// NewSampleService creates a preloader for library
func NewSampleService(library *Library) *SampleService {
	return &SampleService{library: library, timeout: constant.SampleLoadTimeout}
}

// Name implements Service
func (s *SampleService) Name() string {
	return "samples"
}

// Dependencies implements Service
func (s *SampleService) Dependencies() []string {
	return []string{"audio"}
}

// Init implements Service
func (s *SampleService) Init() error {
	return nil
}

// Start implements Service
// Blocks until every asset settles or the timeout passes; stragglers publish later
func (s *SampleService) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	s.library.LoadAll(ctx)
	return nil
}

// Stop implements Service
func (s *SampleService) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Library returns the sample library
func (s *SampleService) Library() *Library {
	return s.library
}
