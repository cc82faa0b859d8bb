package core

// Mode names an ambient setting; it keys palettes, overlays, particle groups and soundscapes
type Mode string

const (
	ModeLake    Mode = "lake"
	ModeBedroom Mode = "bedroom"
	ModeMorning Mode = "morning"
)

// Modes lists every ambient setting in presentation order
var Modes = []Mode{ModeLake, ModeBedroom, ModeMorning}

// Valid reports whether m is a known ambient setting
func (m Mode) Valid() bool {
	for _, k := range Modes {
		if k == m {
			return true
		}
	}
	return false
}
