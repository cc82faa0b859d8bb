package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/ambience/constant"
)

// PCM is a decoded stereo sample at the engine rate, immutable once published
// Looping playback wraps to LoopStart, which is non-zero once a seam is stitched
type PCM struct {
	Name      string
	Rate      beep.SampleRate
	Data      [][2]float64
	LoopStart int
}

// Len returns the frame count
func (p *PCM) Len() int {
	return len(p.Data)
}

// Duration returns the playback length
func (p *PCM) Duration() time.Duration {
	return p.Rate.D(len(p.Data))
}

// Streamer returns an independent reader over the frames
func (p *PCM) Streamer(loop bool) beep.Streamer {
	start := p.LoopStart
	if start < 0 || start >= len(p.Data) {
		start = 0
	}
	return &pcmReader{data: p.Data, loop: loop, loopStart: start}
}

type pcmReader struct {
	data      [][2]float64
	pos       int
	loop      bool
	loopStart int
}

func (r *pcmReader) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) {
		if r.pos >= len(r.data) {
			if !r.loop || len(r.data) == 0 {
				break
			}
			r.pos = r.loopStart
		}
		c := copy(samples[n:], r.data[r.pos:])
		n += c
		r.pos += c
	}
	return n, n > 0
}

func (r *pcmReader) Err() error {
	return nil
}

// DecodeFile decodes a wav or mp3 file into PCM at rate, resampling when the file differs
func DecodeFile(path string, rate beep.SampleRate) (*PCM, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".mp3" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	if ext == ".wav" {
		s, format, err = wav.Decode(f)
	} else {
		s, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(constant.ResampleQuality, format.SampleRate, rate, s)
	}

	data, err := drain(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &PCM{Name: name, Rate: rate, Data: data}, nil
}

// drain pulls a finite streamer to completion
func drain(s beep.Streamer) ([][2]float64, error) {
	buf := make([][2]float64, constant.DecodeChunkFrames)
	var out [][2]float64
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out, s.Err()
}
