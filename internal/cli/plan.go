package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/fitplan/internal/config"
	"github.com/claude/fitplan/internal/planner"
	"github.com/claude/fitplan/internal/report"
	"github.com/spf13/cobra"
)

var (
	planCatalog   string
	planSource    string
	planDays      int
	planTime      int
	planGoals     string
	planEquipment string
	planAvoid     string
	planJSON      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print a weekly exercise plan",
	Long: `Load the exercise catalog and print a day-by-day plan.

Settings come from built-in defaults, then --config, then FITPLAN_* environment
variables, then the flags below. List flags take comma-separated values; pass an
empty string to clear a list (e.g. --equipment "").

A plan shorter than the requested days is not an error: the report ends with a
note instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyPlanFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}

		log := cmdLogger(cmd, cfg)
		ctx := context.Background()

		src, _, closeSource, err := openSource(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeSource()

		exercises, err := src.Load(ctx)
		if err != nil {
			return err
		}
		log.Debug("catalog loaded", "exercises", len(exercises))

		planCfg := cfg.PlanConfig()
		plan := planner.New(log).Plan(exercises, planCfg)

		out := cmd.OutOrStdout()
		if planJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(plan); err != nil {
				return fmt.Errorf("encoding plan: %w", err)
			}
			if !plan.Complete() {
				PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("only %s of %d planned", PrintCount(len(plan.Sessions), "session", "sessions"), plan.Days))
			}
			return nil
		}

		return report.Write(out, plan, planCfg)
	},
}

// applyPlanFlags lays explicitly set flags over the loaded config.
func applyPlanFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Catalog.Source = planSource
	}
	if flags.Changed("catalog") {
		cfg.Catalog.Source = config.SourceCSV
		cfg.Catalog.Path = planCatalog
	}
	if flags.Changed("days") {
		cfg.Plan.Days = planDays
	}
	if flags.Changed("time") {
		cfg.Plan.TimePerDay = planTime
	}
	if flags.Changed("goal") {
		cfg.Plan.Goals = config.SplitList(planGoals)
	}
	if flags.Changed("equipment") {
		cfg.Plan.Equipment = config.SplitList(planEquipment)
	}
	if flags.Changed("avoid") {
		cfg.Plan.AvoidTags = config.SplitList(planAvoid)
	}
}

func init() {
	planCmd.Flags().StringVar(&planCatalog, "catalog", "", "CSV catalog path (selects the csv source)")
	planCmd.Flags().StringVar(&planSource, "source", "", "Catalog source: csv or postgres")
	planCmd.Flags().IntVar(&planDays, "days", 0, "Number of sessions to plan")
	planCmd.Flags().IntVar(&planTime, "time", 0, "Per-session time budget in minutes")
	planCmd.Flags().StringVar(&planGoals, "goal", "", "Goal tags, comma-separated")
	planCmd.Flags().StringVar(&planEquipment, "equipment", "", "Available equipment, comma-separated")
	planCmd.Flags().StringVar(&planAvoid, "avoid", "", "Tags to avoid, comma-separated")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output the plan as JSON")
}
