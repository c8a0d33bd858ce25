package mcp

import (
	"context"
	"strings"

	"github.com/claude/fitplan/internal/models"
	"github.com/claude/fitplan/internal/planner"
	"github.com/mark3labs/mcp-go/mcp"
)

// planArgs lays the tool arguments over the configured defaults. Omitted
// arguments keep the default; an empty array clears it.
func planArgs(req mcp.CallToolRequest, defaults models.PlanConfig) models.PlanConfig {
	cfg := defaults
	args := req.GetArguments()

	cfg.Days = req.GetInt("days", defaults.Days)
	cfg.TimePerDay = req.GetInt("time_per_day", defaults.TimePerDay)
	if _, ok := args["goals"]; ok {
		cfg.Goals = models.NewSet(req.GetStringSlice("goals", nil)...)
	}
	if _, ok := args["equipment"]; ok {
		cfg.Equipment = models.NewSet(req.GetStringSlice("equipment", nil)...)
	}
	if _, ok := args["avoid_tags"]; ok {
		cfg.AvoidTags = models.NewSet(req.GetStringSlice("avoid_tags", nil)...)
	}
	return cfg
}

// findExercise returns the first exercise with the given title, ignoring case.
func findExercise(exercises []models.Exercise, title string) (models.Exercise, bool) {
	for _, ex := range exercises {
		if strings.EqualFold(ex.Title, title) {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// --- Tool definitions ---

var toolPlanWeek = mcp.NewTool("plan_week",
	mcp.WithDescription("Build a greedy weekly exercise plan. Each day picks the highest-scoring unused exercise that fits the time budget, uses available equipment and avoids the given tags; when none fits, an equipment-only fallback is used. Omitted arguments use the configured defaults."),
	mcp.WithNumber("days", mcp.Description("Number of sessions to plan.")),
	mcp.WithNumber("time_per_day", mcp.Description("Per-session time ceiling in minutes.")),
	mcp.WithArray("goals", mcp.Description("Goal tags, e.g. strength, cardio."), mcp.WithStringItems()),
	mcp.WithArray("equipment", mcp.Description("Available equipment. 'none' is always available."), mcp.WithStringItems()),
	mcp.WithArray("avoid_tags", mcp.Description("Tags to exclude."), mcp.WithStringItems()),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog in load order, optionally filtered to exercises carrying a tag."),
	mcp.WithString("tag", mcp.Description("Only return exercises with this tag.")),
)

var toolExplainExercise = mcp.NewTool("explain_exercise",
	mcp.WithDescription("Show the score breakdown (goal hit, time fit, repeat penalty) and filter verdicts for one exercise under the configured defaults."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Exercise title (case-insensitive).")),
	mcp.WithString("previous_muscle", mcp.Description("Primary muscle trained the day before, to apply the repeat penalty.")),
)

// --- Tool handlers ---

func (h *handlers) planWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := planArgs(req, h.defaults)
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	exercises, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp plan_week", "error", err)
		return mcp.NewToolResultError("loading catalog failed: " + err.Error()), nil
	}

	plan := h.planner.Plan(exercises, cfg)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"complete": plan.Complete(),
		"plan":     plan,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("loading catalog failed: " + err.Error()), nil
	}

	out := []models.Exercise{}
	tag := strings.TrimSpace(req.GetString("tag", ""))
	for _, ex := range exercises {
		if tag == "" || ex.HasTag(tag) {
			out = append(out, ex)
		}
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) explainExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}

	exercises, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp explain_exercise", "error", err)
		return mcp.NewToolResultError("loading catalog failed: " + err.Error()), nil
	}

	ex, ok := findExercise(exercises, title)
	if !ok {
		return mcp.NewToolResultError("no exercise titled " + title), nil
	}

	var prev *string
	if p := strings.TrimSpace(req.GetString("previous_muscle", "")); p != "" {
		prev = &p
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise":       ex,
		"primary_muscle": ex.PrimaryMuscle(),
		"breakdown":      planner.Explain(ex, prev, h.defaults),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
