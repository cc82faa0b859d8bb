package story

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultStory []byte

// Parse decodes and validates a story; unknown fields are rejected
// Branch gaps are logged, not returned as errors
func Parse(data []byte) (*Story, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Story
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStory, err)
	}

	gaps, err := s.Validate()
	if err != nil {
		return nil, err
	}
	for _, g := range gaps {
		log.Printf("STORY: %s", g)
	}
	return &s, nil
}

// Load reads and parses a story file
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read story: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the embedded story
func Default() *Story {
	s, err := Parse(defaultStory)
	if err != nil {
		panic(fmt.Sprintf("embedded story: %v", err))
	}
	return s
}
