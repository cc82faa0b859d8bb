package audio

import (
	"time"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter"
)

// Layer names
const (
	LayerWater      = "water"
	LayerCrickets   = "crickets"
	LayerClicking   = "clicking"
	LayerWind       = "wind"
	LayerHum        = "hum"
	LayerBoneTicker = "boneTicker"
	LayerGravel     = "gravel"
)

// Shot is a one-shot sound: a decoded sample when loaded, otherwise a synthesized transient
type Shot struct {
	Sample     string
	SampleGain float64
	Transient  *TransientSpec
}

// LayerSpec declares one named layer of a soundscape
type LayerSpec struct {
	Name string
	Kind LayerKind

	// Continuous layers prefer Sample when loaded and fall back to Synth
	Sample      string
	SampleLevel float64
	Synth       *Graph
	SynthLevel  float64
	Fade        time.Duration

	// Periodic and cue layers
	Shot     Shot
	Interval time.Duration
}

// Scenes holds the layer set for each ambient setting
var Scenes = map[core.Mode][]LayerSpec{
	core.ModeLake: {
		{
			Name:        LayerWater,
			Kind:        LayerContinuous,
			Sample:      parameter.SampleWater,
			SampleLevel: parameter.LakeWaterSampleLevel,
			Synth:       &WaterBed,
			SynthLevel:  parameter.LakeWaterSynthLevel,
			Fade:        parameter.LakeWaterFade,
		},
		{
			Name:        LayerCrickets,
			Kind:        LayerContinuous,
			Sample:      parameter.SampleCrickets,
			SampleLevel: parameter.LakeCricketSampleLevel,
			Synth:       &CricketChorus,
			SynthLevel:  parameter.LakeCricketSynthLevel,
			Fade:        parameter.LakeCricketFade,
		},
		{
			Name:     LayerClicking,
			Kind:     LayerPeriodic,
			Shot:     Shot{Transient: &WaterClick},
			Interval: parameter.LakeClickInterval,
		},
	},
	core.ModeBedroom: {
		{
			Name:        LayerWind,
			Kind:        LayerContinuous,
			Sample:      parameter.SampleWind,
			SampleLevel: parameter.BedroomWindSampleLevel,
			Synth:       &Wind,
			SynthLevel:  parameter.BedroomWindSynthLevel,
			Fade:        parameter.BedroomWindFade,
		},
		{
			Name:        LayerHum,
			Kind:        LayerContinuous,
			Sample:      parameter.SampleHum,
			SampleLevel: parameter.BedroomHumSampleLevel,
			Synth:       &Hum,
			SynthLevel:  parameter.BedroomHumSynthLevel,
			Fade:        parameter.BedroomHumFade,
		},
		{
			Name: LayerBoneTicker,
			Kind: LayerCue,
			Shot: Shot{
				Sample:     parameter.SampleBoneClick,
				SampleGain: parameter.TickSampleGain,
				Transient:  &BoneTick,
			},
		},
	},
	core.ModeMorning: {
		{
			Name:        LayerWind,
			Kind:        LayerContinuous,
			Sample:      parameter.SampleWind,
			SampleLevel: parameter.MorningWindSampleLevel,
			Synth:       &Wind,
			SynthLevel:  parameter.MorningWindSynthLevel,
			Fade:        parameter.MorningWindFade,
		},
		// Starts silent; narrative cues bring it up
		{
			Name:   LayerGravel,
			Kind:   LayerContinuous,
			Sample: parameter.SampleGravel,
			Synth:  &GravelBed,
		},
	},
}
