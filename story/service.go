package story

// WatchService runs a Watcher under the service hub
type WatchService struct {
	path     string
	onChange func(*Story)
	watcher  *Watcher
}

// NewWatchService watches path once started
func NewWatchService(path string, onChange func(*Story)) *WatchService {
	return &WatchService{path: path, onChange: onChange}
}

// Name implements Service
func (s *WatchService) Name() string {
	return "story-watch"
}

// Dependencies implements Service
func (s *WatchService) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *WatchService) Init() error {
	return nil
}

// Start implements Service
func (s *WatchService) Start() error {
	w, err := NewWatcher(s.path, s.onChange)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Stop implements Service
func (s *WatchService) Stop() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
