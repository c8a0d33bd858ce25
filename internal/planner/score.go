package planner

import (
	"math"

	"github.com/claude/fitplan/internal/models"
)

// Scoring weights. Changing them changes every plan.
const (
	GoalWeight    = 0.6
	TimeWeight    = 0.4
	RepeatPenalty = 0.3
)

// Breakdown is the itemised score for one exercise.
type Breakdown struct {
	GoalHit       float64 `json:"goal_hit"`
	TimeFit       float64 `json:"time_fit"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	Score         float64 `json:"score"`
	Feasible      bool    `json:"feasible"`
	Candidate     bool    `json:"candidate"`
}

// Score rates an exercise for the next day. prev is the previous day's primary
// muscle, or nil on the first day.
func Score(ex models.Exercise, prev *string, cfg models.PlanConfig) float64 {
	return Explain(ex, prev, cfg).Score
}

// Explain returns the individual score components along with the filter verdicts.
func Explain(ex models.Exercise, prev *string, cfg models.PlanConfig) Breakdown {
	b := Breakdown{
		GoalHit:  goalHit(ex, cfg.Goals),
		TimeFit:  timeFit(ex.TimeMinutes, cfg.TimePerDay),
		Feasible: IsFeasible(ex, cfg.Equipment),
	}
	b.Candidate = IsCandidate(ex, cfg)
	if prev != nil && *prev == ex.PrimaryMuscle() {
		b.RepeatPenalty = RepeatPenalty
	}
	b.Score = GoalWeight*b.GoalHit + TimeWeight*b.TimeFit - b.RepeatPenalty
	return b
}

// goalHit is the fraction of goals matched by the exercise's distinct tags.
func goalHit(ex models.Exercise, goals models.Set) float64 {
	matched := models.NewSet()
	for _, tag := range ex.Tags {
		if goals.Has(tag) {
			matched[tag] = struct{}{}
		}
	}
	return float64(matched.Len()) / float64(max(1, goals.Len()))
}

// timeFit is 1 at an exact budget match and falls linearly to 0.
func timeFit(minutes, budget int) float64 {
	diff := math.Abs(float64(minutes - budget))
	return math.Max(0, 1-diff/float64(max(1, budget)))
}
