// Package planner selects a week of exercise sessions from a catalog.
//
// Selection is greedy and never backtracks. Each day ranks the unused
// candidates (equipment-feasible, within the time budget, no avoided tag)
// by Score and takes the best one; ties keep catalog order. When no
// candidate is left, the day falls back to any equipment-feasible exercise
// with an unused title, ignoring time and avoided tags. Equipment is never
// relaxed. When even the fallback pool is empty the plan ends early.
package planner
