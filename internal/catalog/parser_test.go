package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = `id,title,tags,time_mins,equipment,muscles
1,Push-ups,strength; bodyweight,10,,chest;triceps
2, Run ,cardio,20,none,legs
3,Goblet Squat,strength;;,25, dumbbell ; ,legs;glutes
4,Hip Mobility Flow,mobility,15,mat,
`

// TestParseCatalog verifies the happy path: trimming, empty sub-lists and file order.
func TestParseCatalog(t *testing.T) {
	exs, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(exs) != 4 {
		t.Fatalf("exercises = %d, want 4", len(exs))
	}

	push := exs[0]
	if push.ID != 1 || push.Title != "Push-ups" || push.TimeMinutes != 10 {
		t.Errorf("exs[0] = %+v", push)
	}
	if want := []string{"strength", "bodyweight"}; !reflect.DeepEqual(push.Tags, want) {
		t.Errorf("exs[0].Tags = %v, want %v", push.Tags, want)
	}
	if len(push.Equipment) != 0 {
		t.Errorf("exs[0].Equipment = %v, want empty", push.Equipment)
	}
	if push.PrimaryMuscle() != "chest" {
		t.Errorf("exs[0] primary muscle = %q, want chest", push.PrimaryMuscle())
	}

	run := exs[1]
	if run.Title != "Run" {
		t.Errorf("exs[1].Title = %q, want trimmed %q", run.Title, "Run")
	}
	if want := []string{"none"}; !reflect.DeepEqual(run.Equipment, want) {
		t.Errorf("exs[1].Equipment = %v, want %v", run.Equipment, want)
	}

	squat := exs[2]
	if want := []string{"strength"}; !reflect.DeepEqual(squat.Tags, want) {
		t.Errorf("exs[2].Tags = %v, want %v (empty items dropped)", squat.Tags, want)
	}
	if want := []string{"dumbbell"}; !reflect.DeepEqual(squat.Equipment, want) {
		t.Errorf("exs[2].Equipment = %v, want %v", squat.Equipment, want)
	}

	flow := exs[3]
	if flow.Muscles == nil || len(flow.Muscles) != 0 {
		t.Errorf("exs[3].Muscles = %#v, want empty non-nil slice", flow.Muscles)
	}
	if flow.PrimaryMuscle() != "full-body" {
		t.Errorf("exs[3] primary muscle = %q, want full-body", flow.PrimaryMuscle())
	}
}

// TestParseColumnOrderAndAlias verifies columns are matched by name and time_minutes is accepted.
func TestParseColumnOrderAndAlias(t *testing.T) {
	csv := "title,id,muscles,equipment,time_minutes,tags\nPlank,7,core,mat,5,strength\n"
	exs, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(exs) != 1 {
		t.Fatalf("exercises = %d, want 1", len(exs))
	}
	if exs[0].ID != 7 || exs[0].Title != "Plank" || exs[0].TimeMinutes != 5 {
		t.Errorf("exs[0] = %+v", exs[0])
	}
}

// TestParseMalformed verifies the fail-fast policy: any bad row aborts the whole load
// with a MalformedRecordError carrying the line number.
func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantCol  string
	}{
		{
			name:     "non-numeric id",
			input:    "id,title,tags,time_mins,equipment,muscles\n1,A,x,10,,\nabc,B,x,10,,\n",
			wantLine: 3,
			wantCol:  ColID,
		},
		{
			name:     "non-numeric time",
			input:    "id,title,tags,time_mins,equipment,muscles\n1,A,x,ten,,\n",
			wantLine: 2,
			wantCol:  ColTimeMins,
		},
		{
			name:     "zero time",
			input:    "id,title,tags,time_mins,equipment,muscles\n1,A,x,0,,\n",
			wantLine: 2,
			wantCol:  ColTimeMins,
		},
		{
			name:     "empty title",
			input:    "id,title,tags,time_mins,equipment,muscles\n1, ,x,10,,\n",
			wantLine: 2,
			wantCol:  ColTitle,
		},
		{
			name:     "missing field",
			input:    "id,title,tags,time_mins,equipment,muscles\n1,A,x,10\n",
			wantLine: 2,
		},
		{
			name:     "missing header column",
			input:    "id,title,tags,equipment,muscles\n1,A,x,,\n",
			wantLine: 1,
		},
		{
			name:     "empty input",
			input:    "",
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exs, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error, got %d exercises", len(exs))
			}
			if exs != nil {
				t.Errorf("expected no partial result, got %d exercises", len(exs))
			}
			var mre *MalformedRecordError
			if !errors.As(err, &mre) {
				t.Fatalf("error %v is not a *MalformedRecordError", err)
			}
			if mre.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", mre.Line, tt.wantLine)
			}
			if mre.Field != tt.wantCol {
				t.Errorf("field = %q, want %q", mre.Field, tt.wantCol)
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Error("errors.Is(err, ErrMalformedRecord) = false")
			}
		})
	}
}

// TestParseHeaderOnly verifies a header with no rows is a valid, empty catalog.
func TestParseHeaderOnly(t *testing.T) {
	exs, err := Parse(strings.NewReader("id,title,tags,time_mins,equipment,muscles\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exs) != 0 {
		t.Errorf("exercises = %d, want 0", len(exs))
	}
}

// TestCSVSourceLoad verifies loading from disk.
func TestCSVSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercises.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}

	exs, err := CSVSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exs) != 4 {
		t.Errorf("exercises = %d, want 4", len(exs))
	}
}

// TestCSVSourceMissing verifies a missing path is reported as ErrSourceNotFound
// before any parsing happens.
func TestCSVSourceMissing(t *testing.T) {
	_, err := CSVSource{Path: "/nonexistent/exercises.csv"}.Load(context.Background())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
	}

	_, err = CSVSource{Path: t.TempDir()}.Load(context.Background())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("directory err = %v, want ErrSourceNotFound", err)
	}
}

// TestCSVSourceMalformed verifies parse failures propagate through Load with their type intact.
func TestCSVSourceMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("id,title,tags,time_mins,equipment,muscles\nx,A,,5,,\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := CSVSource{Path: path}.Load(context.Background())
	var mre *MalformedRecordError
	if !errors.As(err, &mre) {
		t.Fatalf("err = %v, want *MalformedRecordError", err)
	}
}

// TestDuplicateTitles verifies duplicates are reported once each in first-seen order.
func TestDuplicateTitles(t *testing.T) {
	csv := "id,title,tags,time_mins,equipment,muscles\n1,A,,5,,\n2,B,,5,,\n3,A,,5,,\n4,B,,5,,\n5,A,,5,,\n6,C,,5,,\n"
	exs, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := DuplicateTitles(exs), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DuplicateTitles() = %v, want %v", got, want)
	}
}

// TestHashBytes verifies the digest is stable and changes with content.
func TestHashBytes(t *testing.T) {
	h1 := HashBytes([]byte(sampleCSV))
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h2 := HashBytes([]byte(sampleCSV)); h1 != h2 {
		t.Error("hash not stable across calls")
	}
	if h3 := HashBytes([]byte(sampleCSV + "5,Extra,,5,,\n")); h1 == h3 {
		t.Error("different content produced the same hash")
	}
}

// TestSampleCatalog verifies the bundled sample catalog loads cleanly.
func TestSampleCatalog(t *testing.T) {
	exs, err := CSVSource{Path: filepath.Join("..", "..", "data", "exercises.csv")}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if len(exs) != 16 {
		t.Errorf("exercises = %d, want 16", len(exs))
	}
	if dups := DuplicateTitles(exs); len(dups) != 0 {
		t.Errorf("duplicate titles in sample: %v", dups)
	}
}
