package compositor

import "strings"

// NecklineStyle is a closed variant set for the neckline template matcher.
// Unknown inputs map to NecklineUnknown so matching stays total.
type NecklineStyle int

const (
	NecklineUnknown NecklineStyle = iota
	NecklineCrew
	NecklineVNeck
	NecklineScoop
	NecklineBoat
	NecklineHigh
	NecklineOffShoulder
)

// ParseNecklineStyle maps a free-form upstream hint onto the closed set.
func ParseNecklineStyle(s string) NecklineStyle {
	switch normalizeHint(s) {
	case "crew", "crew_neck", "round":
		return NecklineCrew
	case "v_neck", "vneck", "v":
		return NecklineVNeck
	case "scoop", "scoop_neck", "u_neck":
		return NecklineScoop
	case "boat", "boat_neck", "bateau":
		return NecklineBoat
	case "high_neck", "mock", "turtleneck", "mock_neck":
		return NecklineHigh
	case "off_shoulder", "off_the_shoulder":
		return NecklineOffShoulder
	default:
		return NecklineUnknown
	}
}

func (n NecklineStyle) String() string {
	switch n {
	case NecklineCrew:
		return "crew"
	case NecklineVNeck:
		return "v_neck"
	case NecklineScoop:
		return "scoop"
	case NecklineBoat:
		return "boat"
	case NecklineHigh:
		return "high_neck"
	case NecklineOffShoulder:
		return "off_shoulder"
	default:
		return "unknown"
	}
}

// SleeveConfiguration is the closed variant set for sleeve templates.
type SleeveConfiguration int

const (
	SleeveUnknown SleeveConfiguration = iota
	SleeveShort
	SleeveLong
	SleeveThreeQuarter
	SleeveCap
	Sleeveless
)

// ParseSleeveConfiguration maps a free-form upstream hint onto the closed set.
func ParseSleeveConfiguration(s string) SleeveConfiguration {
	switch normalizeHint(s) {
	case "short", "short_sleeve":
		return SleeveShort
	case "long", "long_sleeve":
		return SleeveLong
	case "3_quarter", "three_quarter", "3/4":
		return SleeveThreeQuarter
	case "cap", "cap_sleeve":
		return SleeveCap
	case "sleeveless", "tank", "none":
		return Sleeveless
	default:
		return SleeveUnknown
	}
}

func (s SleeveConfiguration) String() string {
	switch s {
	case SleeveShort:
		return "short"
	case SleeveLong:
		return "long"
	case SleeveThreeQuarter:
		return "3_quarter"
	case SleeveCap:
		return "cap"
	case Sleeveless:
		return "sleeveless"
	default:
		return "unknown"
	}
}

// ClosureType is the closed variant set for front-opening templates.
type ClosureType int

const (
	ClosureUnknown ClosureType = iota
	ClosureButtonFront
	ClosureZipFront
	ClosurePullover
	ClosureOpenFront
)

// ParseClosureType maps a free-form upstream hint onto the closed set.
func ParseClosureType(s string) ClosureType {
	switch normalizeHint(s) {
	case "button_front", "buttons", "button":
		return ClosureButtonFront
	case "zip_front", "zip", "zipper", "full_zip":
		return ClosureZipFront
	case "pullover", "none":
		return ClosurePullover
	case "open_front", "open":
		return ClosureOpenFront
	default:
		return ClosureUnknown
	}
}

func (c ClosureType) String() string {
	switch c {
	case ClosureButtonFront:
		return "button_front"
	case ClosureZipFront:
		return "zip_front"
	case ClosurePullover:
		return "pullover"
	case ClosureOpenFront:
		return "open_front"
	default:
		return "unknown"
	}
}

// StyleHints carries the garment style descriptors supplied by the upstream
// analysis collaborator, already parsed onto the closed variant sets.
type StyleHints struct {
	CategoryGeneric string
	Neckline        NecklineStyle
	Sleeves         SleeveConfiguration
	Closure         ClosureType
}

// ParseStyleHints converts raw upstream strings into StyleHints.
func ParseStyleHints(category, neckline, sleeves, closure string) StyleHints {
	return StyleHints{
		CategoryGeneric: normalizeHint(category),
		Neckline:        ParseNecklineStyle(neckline),
		Sleeves:         ParseSleeveConfiguration(sleeves),
		Closure:         ParseClosureType(closure),
	}
}

func normalizeHint(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
