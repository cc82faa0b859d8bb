package audio

import (
	"math/rand/v2"

	"github.com/lixenwraith/ambience/parameter"
)

// brownNoise integrates white noise through a leaky first-order filter,
// biasing energy toward low frequencies
type brownNoise struct {
	rng  *rand.Rand
	last float64
}

// NewBrownNoise returns an endless stereo brown noise streamer
func NewBrownNoise(rng *rand.Rand) *brownNoise {
	return &brownNoise{rng: rng}
}

func (n *brownNoise) Stream(samples [][2]float64) (int, bool) {
	const k = parameter.BrownNoiseLeak
	for i := range samples {
		white := n.rng.Float64()*2 - 1
		n.last = (n.last + k*white) / (1 + k)
		v := n.last * parameter.BrownNoiseGain
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *brownNoise) Err() error {
	return nil
}

// childRand derives an independent generator so concurrent streamers never share state
func childRand(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}
