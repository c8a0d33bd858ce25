package planner

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/claude/fitplan/internal/models"
)

// Planner builds week plans.
type Planner struct {
	log *slog.Logger
}

// New creates a Planner. A nil logger discards output.
func New(log *slog.Logger) *Planner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Planner{log: log}
}

type ranked struct {
	ex    models.Exercise
	score float64
}

// Plan picks at most cfg.Days exercises, one per day, never repeating a title.
// The result is deterministic for a given catalog order and config.
func (p *Planner) Plan(exercises []models.Exercise, cfg models.PlanConfig) models.WeekPlan {
	plan := models.WeekPlan{Days: cfg.Days, Sessions: []models.Session{}}
	used := make(map[string]bool)
	var prev *string

	for day := 1; day <= cfg.Days; day++ {
		pool := rank(exercises, used, prev, cfg, func(ex models.Exercise) bool {
			return IsCandidate(ex, cfg)
		})
		fallback := false

		if len(pool) == 0 {
			pool = rank(exercises, used, prev, cfg, func(ex models.Exercise) bool {
				return IsFeasible(ex, cfg.Equipment)
			})
			if len(pool) == 0 {
				p.log.Debug("no feasible exercise left, ending plan early",
					"day", day, "planned", len(plan.Sessions), "requested", cfg.Days)
				break
			}
			fallback = true
			p.log.Debug("using fallback pool", "day", day, "pool", len(pool))
		}

		pick := pool[0]
		plan.Sessions = append(plan.Sessions, models.Session{
			Day:      day,
			Exercise: pick.ex,
			Score:    pick.score,
			Fallback: fallback,
		})
		used[pick.ex.Title] = true
		muscle := pick.ex.PrimaryMuscle()
		prev = &muscle
	}

	return plan
}

// rank filters the unused exercises with keep and sorts them by descending
// score. The sort is stable so equal scores keep catalog order.
func rank(exercises []models.Exercise, used map[string]bool, prev *string, cfg models.PlanConfig, keep func(models.Exercise) bool) []ranked {
	var pool []ranked
	for _, ex := range exercises {
		if used[ex.Title] || !keep(ex) {
			continue
		}
		pool = append(pool, ranked{ex: ex, score: Score(ex, prev, cfg)})
	}
	slices.SortStableFunc(pool, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})
	return pool
}
