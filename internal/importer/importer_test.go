package importer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/models"
	"github.com/claude/fitplan/internal/storage"
)

type fakeStore struct {
	replaced [][]models.Exercise
	logs     []storage.ImportLog
	err      error
}

func (f *fakeStore) ReplaceExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.replaced = append(f.replaced, exercises)
	return int64(len(exercises)), nil
}

func (f *fakeStore) InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error) {
	f.logs = append(f.logs, log)
	return int64(len(f.logs)), nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exercises.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const catalogCSV = `id,title,tags,time_mins,equipment,muscles
1,Push-ups,strength,10,,chest
2,Run,cardio,20,,legs
3,Run,cardio,25,,legs
`

// TestImportStoresCatalog verifies a successful import replaces the catalog
// and writes a success log row.
func TestImportStoresCatalog(t *testing.T) {
	store := &fakeStore{}
	imp := New(store, slog.Default(), false)

	stats, err := imp.Import(context.Background(), writeCSV(t, catalogCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RecordsParsed != 3 || stats.RecordsInserted != 3 {
		t.Errorf("parsed=%d inserted=%d, want 3/3", stats.RecordsParsed, stats.RecordsInserted)
	}
	if want := []string{"Run"}; !reflect.DeepEqual(stats.DuplicateTitles, want) {
		t.Errorf("duplicates = %v, want %v", stats.DuplicateTitles, want)
	}
	if len(store.replaced) != 1 {
		t.Fatalf("ReplaceExercises calls = %d, want 1", len(store.replaced))
	}
	if len(store.logs) != 1 || store.logs[0].Status != StatusSuccess {
		t.Fatalf("logs = %+v, want one success entry", store.logs)
	}
	if store.logs[0].RunID != stats.RunID {
		t.Errorf("log run_id = %v, want %v", store.logs[0].RunID, stats.RunID)
	}
	if store.logs[0].FileHash == nil || *store.logs[0].FileHash != stats.FileHash {
		t.Errorf("log file_hash = %v, want %q", store.logs[0].FileHash, stats.FileHash)
	}
}

// TestImportDryRun verifies nothing is written in dry-run mode.
func TestImportDryRun(t *testing.T) {
	store := &fakeStore{}
	imp := New(store, slog.Default(), true)

	stats, err := imp.Import(context.Background(), writeCSV(t, catalogCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RecordsParsed != 3 {
		t.Errorf("parsed = %d, want 3", stats.RecordsParsed)
	}
	if len(store.replaced) != 0 || len(store.logs) != 0 {
		t.Errorf("dry run wrote to store: replaced=%d logs=%d", len(store.replaced), len(store.logs))
	}
}

// TestImportMalformedLeavesCatalog verifies the fail-fast policy: a bad row
// aborts before anything is stored and the failure is logged.
func TestImportMalformedLeavesCatalog(t *testing.T) {
	store := &fakeStore{}
	imp := New(store, slog.Default(), false)

	_, err := imp.Import(context.Background(), writeCSV(t, catalogCSV+"four,Row,cardio,20,,back\n"))
	var mre *catalog.MalformedRecordError
	if !errors.As(err, &mre) {
		t.Fatalf("err = %v, want *MalformedRecordError", err)
	}
	if mre.Line != 5 {
		t.Errorf("line = %d, want 5", mre.Line)
	}
	if len(store.replaced) != 0 {
		t.Error("catalog replaced despite malformed record")
	}
	if len(store.logs) != 1 || store.logs[0].Status != StatusError || store.logs[0].ErrorMessage == nil {
		t.Errorf("logs = %+v, want one error entry with message", store.logs)
	}
}

// TestImportMissingFile verifies a missing file surfaces ErrSourceNotFound.
func TestImportMissingFile(t *testing.T) {
	imp := New(&fakeStore{}, slog.Default(), false)
	_, err := imp.Import(context.Background(), "/nonexistent/exercises.csv")
	if !errors.Is(err, catalog.ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
	}
}

// TestImportStoreError verifies storage failures are returned and logged.
func TestImportStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	imp := New(store, slog.Default(), false)

	if _, err := imp.Import(context.Background(), writeCSV(t, catalogCSV)); err == nil {
		t.Fatal("expected error")
	}
	if len(store.logs) != 1 || store.logs[0].Status != StatusError {
		t.Errorf("logs = %+v, want one error entry", store.logs)
	}
}

// TestImportDataRecordsSource verifies in-memory imports carry the given source
// label into the import log.
func TestImportDataRecordsSource(t *testing.T) {
	store := &fakeStore{}
	imp := New(store, nil, false)

	stats, err := imp.ImportData(context.Background(), "upload:10.0.0.7", []byte(catalogCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RecordsInserted != 3 {
		t.Errorf("inserted = %d, want 3", stats.RecordsInserted)
	}
	if len(store.logs) != 1 || store.logs[0].Source != "upload:10.0.0.7" {
		t.Errorf("logs = %+v, want source upload:10.0.0.7", store.logs)
	}
	if stats.FileHash != catalog.HashBytes([]byte(catalogCSV)) {
		t.Errorf("file hash = %q, want hash of input", stats.FileHash)
	}
}
