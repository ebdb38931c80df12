package rubric

import "rubrica/internal/evidence"

// Level is one of the discrete grades a criterion can receive.
type Level float64

const (
	LevelInsufficient Level = 1.0
	LevelIncipient    Level = 2.0
	LevelBasic        Level = 3.0
	LevelAcceptable   Level = 4.0
	LevelSatisfactory Level = 5.0
	LevelGood         Level = 6.0
	LevelExcellent    Level = 7.0
)

// Levels lists the canonical level set from lowest to highest.
var Levels = []Level{
	LevelInsufficient,
	LevelIncipient,
	LevelBasic,
	LevelAcceptable,
	LevelSatisfactory,
	LevelGood,
	LevelExcellent,
}

// ThresholdRule maps an evidence condition to a level. Rules are evaluated
// top-down and the first match wins; a rule with a nil condition always
// matches and terminates the scan.
type ThresholdRule struct {
	Level   Level
	When    func(ev evidence.Evidence) bool
	Because string
}

// Criterion is one gradeable dimension of a rubric. Criteria are immutable
// after the rubric is validated.
type Criterion struct {
	ID          string
	Name        string
	Description string
	Weight      float64
	Levels      map[Level]string
	Rules       []ThresholdRule
}

// LowestLevel returns the smallest level the criterion declares.
func (c Criterion) LowestLevel() Level {
	lowest := Level(0)
	for level := range c.Levels {
		if lowest == 0 || level < lowest {
			lowest = level
		}
	}
	if lowest == 0 {
		return LevelInsufficient
	}
	return lowest
}

// Rubric is an ordered, weighted set of criteria producing a grade on the
// 1.0-7.0 scale.
type Rubric struct {
	Name         string
	Description  string
	PassingGrade float64
	Criteria     []Criterion
}

// DefaultPassingGrade is the pass threshold when a rubric does not set one.
const DefaultPassingGrade = 4.0

// Passing returns the rubric's pass threshold.
func (r Rubric) Passing() float64 {
	if r.PassingGrade > 0 {
		return r.PassingGrade
	}
	return DefaultPassingGrade
}
