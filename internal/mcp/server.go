package mcp

import (
	"log/slog"

	"github.com/claude/fitplan/internal/models"
	"github.com/claude/fitplan/internal/planner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
// defaults fills any plan_week argument the caller leaves out.
func New(ds DataSource, defaults models.PlanConfig, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitPlan weekly exercise planner. Build a week of sessions from the exercise catalog under time, goal, equipment and avoided-tag constraints, browse the catalog, and explain how an exercise scores."),
	)

	h := newHandlers(ds, defaults, log)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolPlanWeek, Handler: h.planWeek},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolExplainExercise, Handler: h.explainExercise},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resPlanDefaults, Handler: h.planDefaults},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	defaults models.PlanConfig
	planner  *planner.Planner
	log      *slog.Logger
}

func newHandlers(ds DataSource, defaults models.PlanConfig, log *slog.Logger) *handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &handlers{ds: ds, defaults: defaults, planner: planner.New(log), log: log}
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"fitplan://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every exercise in the catalog, in load order"),
	mcp.WithMIMEType("application/json"),
)

var resPlanDefaults = mcp.NewResource(
	"fitplan://plan_defaults",
	"Plan Defaults",
	mcp.WithResourceDescription("Configured days, time per day, goals, equipment and avoided tags used when plan_week arguments are omitted"),
	mcp.WithMIMEType("application/json"),
)
