package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/claude/fitplan/internal/models"
)

// ShortPlanNote is printed when fewer sessions than requested days were planned.
const ShortPlanNote = "Note: Not enough feasible sessions under current constraints."

// Write renders a plain-text week plan.
func Write(w io.Writer, plan models.WeekPlan, cfg models.PlanConfig) error {
	bw := bufio.NewWriter(w)

	goals := "none"
	if cfg.Goals.Len() > 0 {
		goals = strings.Join(cfg.Goals.Sorted(), ", ")
	}

	fmt.Fprintln(bw, "=== FitPlan ===")
	fmt.Fprintf(bw, "Days: %d | Time/day: %d min | Goals: %s\n", cfg.Days, cfg.TimePerDay, goals)
	fmt.Fprintf(bw, "Chosen %d sessions\n\n", len(plan.Sessions))

	for _, s := range plan.Sessions {
		ex := s.Exercise
		equip := "none"
		if len(ex.Equipment) > 0 {
			equip = strings.Join(ex.Equipment, ", ")
		}
		fmt.Fprintf(bw, "Day %d: %s  (%d min)  equip: %s\n", s.Day, ex.Title, ex.TimeMinutes, equip)
		fmt.Fprintf(bw, "  tags: %s | muscles: %s\n", strings.Join(ex.Tags, "; "), strings.Join(ex.Muscles, "; "))
	}

	if !plan.Complete() {
		fmt.Fprintf(bw, "\n%s\n", ShortPlanNote)
	}

	return bw.Flush()
}
