package models

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered collection of strings used for goals, equipment and avoided tags.
type Set map[string]struct{}

// NewSet builds a Set from items, trimming whitespace and dropping empty entries.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is a member of the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// PlanConfig holds the per-run planning constraints. Treat it as immutable once built.
type PlanConfig struct {
	Days       int
	TimePerDay int
	Goals      Set
	Equipment  Set
	AvoidTags  Set
}

// NewPlanConfig builds a PlanConfig from plain string lists.
func NewPlanConfig(days, timePerDay int, goals, equipment, avoidTags []string) PlanConfig {
	return PlanConfig{
		Days:       days,
		TimePerDay: timePerDay,
		Goals:      NewSet(goals...),
		Equipment:  NewSet(equipment...),
		AvoidTags:  NewSet(avoidTags...),
	}
}

// Validate reports whether the day count and time budget are positive.
func (c PlanConfig) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}
	if c.TimePerDay <= 0 {
		return fmt.Errorf("time per day must be positive, got %d", c.TimePerDay)
	}
	return nil
}

// Session is one planned day.
type Session struct {
	Day      int      `json:"day"`
	Exercise Exercise `json:"exercise"`
	Score    float64  `json:"score"`
	Fallback bool     `json:"fallback"`
}

// WeekPlan is the ordered result of a planning run. It may hold fewer
// sessions than requested days when constraints are tight.
type WeekPlan struct {
	Days     int       `json:"days"`
	Sessions []Session `json:"sessions"`
}

// Complete reports whether every requested day received a session.
func (p WeekPlan) Complete() bool {
	return len(p.Sessions) >= p.Days
}

// Titles returns the chosen exercise titles in day order.
func (p WeekPlan) Titles() []string {
	out := make([]string, len(p.Sessions))
	for i, s := range p.Sessions {
		out[i] = s.Exercise.Title
	}
	return out
}

// FallbackCount returns how many sessions were picked from the fallback pool.
func (p WeekPlan) FallbackCount() int {
	n := 0
	for _, s := range p.Sessions {
		if s.Fallback {
			n++
		}
	}
	return n
}
