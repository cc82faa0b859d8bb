package parameter

import "time"

// Master Bus
const (
	// DefaultMasterLevel is the unmuted bus multiplier
	DefaultMasterLevel = 0.3
)

// Brown Noise
const (
	BrownNoiseLeak = 0.01
	BrownNoiseGain = 1.5
)

// Cricket Texture: band-passed noise with a rhythmic amplitude gate
const (
	CricketFreq      = 3000.0
	CricketQ         = 15.0
	CricketGateRate  = 4.0
	CricketGateDepth = 0.08
)

// Wind Texture: low-passed noise with a slowly sweeping cutoff
const (
	WindFreq       = 180.0
	WindQ          = 0.5
	WindSweepRate  = 0.08
	WindSweepDepth = 60.0
)

// Water Bed
const (
	WaterFreq = 250.0
	WaterQ    = 0.7071
)

// Gravel Texture
const (
	GravelFreq      = 400.0
	GravelQ         = 0.8
	GravelGateRate  = 0.6
	GravelGateDepth = 0.5
)

// Hum Tone
const (
	HumFreq       = 48.0
	HumFilterFreq = 80.0
	HumFilterQ    = 0.7071
)

// Water Click Transient
const (
	ClickDuration = 60 * time.Millisecond
	ClickDecay    = 0.08
	ClickAmp      = 0.6
	ClickFreqMin  = 250.0
	ClickFreqMax  = 400.0
	ClickQ        = 3.0
	ClickGain     = 0.5
)

// Bone Tick Transient
const (
	TickDuration   = 25 * time.Millisecond
	TickDecay      = 0.04
	TickAmp        = 0.1
	TickFreqMin    = 600.0
	TickFreqMax    = 900.0
	TickQ          = 0.7071
	TickGain       = 0.25
	TickSampleGain = 0.6
)

// Lake Soundscape
const (
	LakeWaterSampleLevel   = 0.25
	LakeWaterSynthLevel    = 0.7
	LakeWaterFade          = 4 * time.Second
	LakeCricketSampleLevel = 0.4
	LakeCricketSynthLevel  = 0.15
	LakeCricketFade        = 3 * time.Second
	LakeClickInterval      = 1500 * time.Millisecond
)

// Bedroom Soundscape
const (
	BedroomWindSampleLevel = 0.4
	BedroomWindSynthLevel  = 0.5
	BedroomWindFade        = 3 * time.Second
	BedroomHumSampleLevel  = 0.25
	BedroomHumSynthLevel   = 0.2
	BedroomHumFade         = 4 * time.Second
)

// Morning Soundscape
const (
	MorningWindSampleLevel = 0.3
	MorningWindSynthLevel  = 0.4
	MorningWindFade        = 3 * time.Second
)

// Loop Seams
const (
	CricketLoopFade = 1500 * time.Millisecond
	WindLoopFade    = time.Second
	WaterLoopFade   = time.Second
)
