package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// pipeCandidates lists exec-based players accepting raw s16le stereo on stdin, in priority order
func pipeCandidates(rate int) []BackendConfig {
	r := strconv.Itoa(rate)
	return []BackendConfig{
		// PulseAudio, also served by PipeWire's pulse shim
		{Type: BackendPulse, Name: "pacat", Args: []string{
			"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback",
		}},
		// PipeWire native
		{Type: BackendPipeWire, Name: "pw-cat", Args: []string{
			"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-",
		}},
		// ALSA
		{Type: BackendALSA, Name: "aplay", Args: []string{
			"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q",
		}},
		// SoX
		{Type: BackendSoX, Name: "play", Args: []string{
			"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q",
		}},
		// Heavyweight fallback
		{Type: BackendFFplay, Name: "ffplay", Args: []string{
			"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
		}},
	}
}

// DetectBackend returns the first available pipe backend for rate
// FreeBSD OSS is written directly when no player is installed
func DetectBackend(rate int) (*BackendConfig, error) {
	for _, c := range pipeCandidates(rate) {
		if path, err := exec.LookPath(c.Name); err == nil {
			c.Path = path
			return &c, nil
		}
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
