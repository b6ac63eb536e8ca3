package colour

// WCAG 2.x minimum contrast ratios.
const (
	AANormal  = 4.5 // AA, normal text
	AALarge   = 3.0 // AA, large text (18pt or 14pt bold)
	AAANormal = 7.0 // AAA, normal text
	AAALarge  = 4.5 // AAA, large text
)

// Level identifies one of the four WCAG contrast thresholds.
type Level int

const (
	LevelAANormal Level = iota
	LevelAALarge
	LevelAAANormal
	LevelAAALarge
)

// Levels lists every threshold in report order.
var Levels = []Level{LevelAANormal, LevelAALarge, LevelAAANormal, LevelAAALarge}

// Threshold returns the minimum ratio needed to pass the level.
func (l Level) Threshold() float64 {
	switch l {
	case LevelAANormal:
		return AANormal
	case LevelAALarge:
		return AALarge
	case LevelAAANormal:
		return AAANormal
	case LevelAAALarge:
		return AAALarge
	default:
		return 0
	}
}

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelAANormal:
		return "AA normal text"
	case LevelAALarge:
		return "AA large text"
	case LevelAAANormal:
		return "AAA normal text"
	case LevelAAALarge:
		return "AAA large text"
	default:
		return "unknown"
	}
}

// Key returns a stable identifier for machine-readable output.
func (l Level) Key() string {
	switch l {
	case LevelAANormal:
		return "aa_normal"
	case LevelAALarge:
		return "aa_large"
	case LevelAAANormal:
		return "aaa_normal"
	case LevelAAALarge:
		return "aaa_large"
	default:
		return "unknown"
	}
}

// Large reports whether the level is a large-text threshold.
func (l Level) Large() bool {
	return l == LevelAALarge || l == LevelAAALarge
}

// LargeCounterpart returns the large-text level of the same tier.
// Large levels return themselves.
func (l Level) LargeCounterpart() Level {
	switch l {
	case LevelAANormal:
		return LevelAALarge
	case LevelAAANormal:
		return LevelAAALarge
	default:
		return l
	}
}

// Compliance holds the pass/fail outcome of a ratio against each threshold.
type Compliance struct {
	AANormal  bool `json:"aa_normal"`
	AALarge   bool `json:"aa_large"`
	AAANormal bool `json:"aaa_normal"`
	AAALarge  bool `json:"aaa_large"`
}

// Classify compares a contrast ratio against the four WCAG thresholds.
func Classify(ratio float64) Compliance {
	return Compliance{
		AANormal:  ratio >= AANormal,
		AALarge:   ratio >= AALarge,
		AAANormal: ratio >= AAANormal,
		AAALarge:  ratio >= AAALarge,
	}
}

// Passes reports whether the given level was met.
func (c Compliance) Passes(l Level) bool {
	switch l {
	case LevelAANormal:
		return c.AANormal
	case LevelAALarge:
		return c.AALarge
	case LevelAAANormal:
		return c.AAANormal
	case LevelAAALarge:
		return c.AAALarge
	default:
		return false
	}
}

// Grade summarises one conformance tier for display.
type Grade int

const (
	GradeFail      Grade = iota // fails both normal and large text
	GradeLargeOnly              // passes large text only
	GradePass                   // passes normal text
)

// Icon returns the table glyph for the grade.
func (g Grade) Icon() string {
	switch g {
	case GradePass:
		return "✓"
	case GradeLargeOnly:
		return "◐"
	default:
		return "✗"
	}
}

// String returns the grade as a word.
func (g Grade) String() string {
	switch g {
	case GradePass:
		return "pass"
	case GradeLargeOnly:
		return "large-only"
	default:
		return "fail"
	}
}

// AAGrade returns the AA tier grade.
func (c Compliance) AAGrade() Grade {
	return grade(c.AANormal, c.AALarge)
}

// AAAGrade returns the AAA tier grade.
func (c Compliance) AAAGrade() Grade {
	return grade(c.AAANormal, c.AAALarge)
}

func grade(normal, large bool) Grade {
	switch {
	case normal:
		return GradePass
	case large:
		return GradeLargeOnly
	default:
		return GradeFail
	}
}
