package airkorea

import (
	"airkorea/pkg/textutil"
	"fmt"
	"strings"
)

// Grade is the site-assigned severity bucket of a pollutant's current
// reading. Grades are ordered, GradeNone < GradeGood < ... < GradeCritical.
type Grade int

const (
	GradeNone Grade = iota
	GradeGood
	GradeNormal
	GradeBad
	GradeCritical
)

// Grades lists every grade in ascending order.
var Grades = [...]Grade{GradeNone, GradeGood, GradeNormal, GradeBad, GradeCritical}

// the site always starts the status word with a distinct syllable per grade:
// 좋음 (good), 보통 (normal), 나쁨 (bad), 매우나쁨 (critical). checked in order.
var gradePrefixes = [...]struct {
	prefix string
	grade  Grade
}{
	{"좋", GradeGood},
	{"보", GradeNormal},
	{"나", GradeBad},
	{"매", GradeCritical},
}

// ClassifyGrade maps a localized status word to a Grade. It never fails,
// text that does not start with a known prefix is GradeNone.
func ClassifyGrade(text string) Grade {
	text = textutil.Clean(text)
	for _, p := range gradePrefixes {
		if strings.HasPrefix(text, p.prefix) {
			return p.grade
		}
	}
	return GradeNone
}

func (g Grade) String() string {
	switch g {
	case GradeNone:
		return "None"
	case GradeGood:
		return "Good"
	case GradeNormal:
		return "Normal"
	case GradeBad:
		return "Bad"
	case GradeCritical:
		return "Critical"
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

func (g Grade) Valid() bool {
	return g >= GradeNone && g <= GradeCritical
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid grade %d", int(g))
	}
	return []byte(strings.ToLower(g.String())), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	for _, candidate := range Grades {
		if strings.EqualFold(candidate.String(), string(text)) {
			*g = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown grade %q", string(text))
}
