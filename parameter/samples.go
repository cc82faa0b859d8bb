package parameter

// Sample names used by the soundscape
const (
	SampleWater     = "water"
	SampleCrickets  = "crickets"
	SampleWind      = "wind"
	SampleHum       = "hum"
	SampleBoneClick = "boneClick"
	SampleGravel    = "gravel"
)

// SampleFiles maps each sample name to its file stem under the asset directory
var SampleFiles = map[string]string{
	SampleWater:     "water",
	SampleCrickets:  "crickets",
	SampleWind:      "wind",
	SampleHum:       "hum",
	SampleBoneClick: "bone-click",
	SampleGravel:    "gravel",
}

// SampleExtensions are tried in order; the first existing file wins
var SampleExtensions = []string{".mp3", ".wav"}
