package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/models"
)

const scenarioCSV = `id,title,tags,time_mins,equipment,muscles
1,Push-ups,strength,10,,chest
2,Run,cardio,20,,legs
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exercises.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestPlanReport verifies the plan command prints the report for the
// two-exercise scenario.
func TestPlanReport(t *testing.T) {
	path := writeCatalog(t, scenarioCSV)
	out, _, err := execute(t, "plan", "--catalog", path, "--days", "2", "--time", "30",
		"--goal", "strength,cardio", "--equipment", "")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}

	want := `=== FitPlan ===
Days: 2 | Time/day: 30 min | Goals: cardio, strength
Chosen 2 sessions

Day 1: Run  (20 min)  equip: none
  tags: cardio | muscles: legs
Day 2: Push-ups  (10 min)  equip: none
  tags: strength | muscles: chest
`
	if out != want {
		t.Errorf("report mismatch\n got:\n%s\nwant:\n%s", out, want)
	}
}

// TestPlanShortIsNotError verifies a short plan exits cleanly with the note.
func TestPlanShortIsNotError(t *testing.T) {
	path := writeCatalog(t, scenarioCSV)
	out, _, err := execute(t, "plan", "--catalog", path, "--days", "5")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if !strings.Contains(out, "Chosen 2 sessions") || !strings.HasSuffix(out, "Note: Not enough feasible sessions under current constraints.\n") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

// TestPlanJSON verifies --json emits the plan and warns on stderr when short.
func TestPlanJSON(t *testing.T) {
	path := writeCatalog(t, scenarioCSV)
	out, errOut, err := execute(t, "plan", "--catalog", path, "--days", "3", "--json")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}

	var plan models.WeekPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if plan.Days != 3 || len(plan.Sessions) != 2 {
		t.Errorf("plan = %+v", plan)
	}
	if !strings.Contains(errOut, "only 2 sessions of 3 planned") {
		t.Errorf("stderr = %q, want short-plan warning", errOut)
	}
}

// TestPlanEnvOverride verifies FITPLAN_* variables apply below flags.
func TestPlanEnvOverride(t *testing.T) {
	path := writeCatalog(t, scenarioCSV)
	t.Setenv("FITPLAN_PLAN_DAYS", "1")
	t.Setenv("FITPLAN_CATALOG_PATH", path)

	out, _, err := execute(t, "plan")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if !strings.Contains(out, "Days: 1 |") || !strings.Contains(out, "Chosen 1 sessions") {
		t.Errorf("unexpected report:\n%s", out)
	}

	out, _, err = execute(t, "plan", "--days", "2")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if !strings.Contains(out, "Days: 2 |") {
		t.Errorf("flag did not override env:\n%s", out)
	}
}

// TestPlanErrors verifies missing and malformed catalogs surface typed errors.
func TestPlanErrors(t *testing.T) {
	_, _, err := execute(t, "plan", "--catalog", filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, catalog.ErrSourceNotFound) {
		t.Errorf("missing file err = %v, want ErrSourceNotFound", err)
	}

	path := writeCatalog(t, scenarioCSV+"3,Row,cardio,-5,,back\n")
	_, _, err = execute(t, "plan", "--catalog", path)
	var mre *catalog.MalformedRecordError
	if !errors.As(err, &mre) || mre.Line != 4 {
		t.Errorf("malformed err = %v, want MalformedRecordError on line 4", err)
	}

	if _, _, err := execute(t, "plan", "--catalog", path, "--days", "0"); err == nil {
		t.Error("expected validation error for --days 0")
	}
}

// TestImportDryRun verifies import --dry-run validates without a database.
func TestImportDryRun(t *testing.T) {
	path := writeCatalog(t, scenarioCSV+"3,Run,cardio,30,,legs\n")
	out, _, err := execute(t, "import", "--file", path, "--dry-run")
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if !strings.Contains(out, "3 exercises parsed") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, `title "Run" appears more than once`) {
		t.Errorf("missing duplicate warning in %q", out)
	}
}

// TestPushDryRun verifies push --dry-run validates locally and records nothing.
func TestPushDryRun(t *testing.T) {
	path := writeCatalog(t, scenarioCSV)
	stateDir := t.TempDir()
	out, _, err := execute(t, "push", "--server", "http://127.0.0.1:1", "--file", path,
		"--state-dir", stateDir, "--dry-run")
	if err != nil {
		t.Fatalf("push error: %v", err)
	}
	if !strings.Contains(out, "2 exercises valid") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "state.db")); err != nil {
		t.Errorf("state db not created: %v", err)
	}
}

// TestPushRequiresFlags verifies --server and --file are mandatory.
func TestPushRequiresFlags(t *testing.T) {
	if _, _, err := execute(t, "push", "--file", "x.csv"); err == nil {
		t.Error("expected error without --server")
	}
}
