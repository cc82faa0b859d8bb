package audio

import "github.com/lixenwraith/ambience/parameter"

// Synthesized textures standing in for missing samples
var (
	// WaterBed is low-passed brown noise
	WaterBed = Graph{
		Source: SourceSpec{Kind: SourceNoise},
		Stages: []StageSpec{
			{Kind: StageFilter, Filter: LowPass, Freq: parameter.WaterFreq, Q: parameter.WaterQ},
		},
	}

	// CricketChorus is a narrow band of noise pulsed by a fast gate
	CricketChorus = Graph{
		Source: SourceSpec{Kind: SourceNoise},
		Stages: []StageSpec{
			{Kind: StageFilter, Filter: BandPass, Freq: parameter.CricketFreq, Q: parameter.CricketQ},
			{Kind: StageGate, ModRate: parameter.CricketGateRate, ModDepth: parameter.CricketGateDepth},
		},
	}

	// Wind is low-passed noise whose cutoff drifts slowly
	Wind = Graph{
		Source: SourceSpec{Kind: SourceNoise},
		Stages: []StageSpec{
			{
				Kind: StageFilter, Filter: LowPass,
				Freq: parameter.WindFreq, Q: parameter.WindQ,
				ModRate: parameter.WindSweepRate, ModDepth: parameter.WindSweepDepth,
			},
		},
	}

	// GravelBed is mid-band noise with a slow uneven gate
	GravelBed = Graph{
		Source: SourceSpec{Kind: SourceNoise},
		Stages: []StageSpec{
			{Kind: StageFilter, Filter: BandPass, Freq: parameter.GravelFreq, Q: parameter.GravelQ},
			{Kind: StageGate, ModRate: parameter.GravelGateRate, ModDepth: parameter.GravelGateDepth},
		},
	}

	// Hum is a low sine under a low-pass, barely audible
	Hum = Graph{
		Source: SourceSpec{Kind: SourceSine, Freq: parameter.HumFreq},
		Stages: []StageSpec{
			{Kind: StageFilter, Filter: LowPass, Freq: parameter.HumFilterFreq, Q: parameter.HumFilterQ},
		},
	}
)
