package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/fitplan/internal/models"
)

// Column names expected in the header row.
const (
	ColID        = "id"
	ColTitle     = "title"
	ColTags      = "tags"
	ColTimeMins  = "time_mins"
	ColEquipment = "equipment"
	ColMuscles   = "muscles"
)

// listSep separates items inside the tags, equipment and muscles columns.
const listSep = ";"

var requiredColumns = []string{ColID, ColTitle, ColTags, ColTimeMins, ColEquipment, ColMuscles}

// columnAliases maps accepted alternate header names to their canonical column.
var columnAliases = map[string]string{
	"time_minutes": ColTimeMins,
}

// Parse reads a comma-separated exercise catalog with a header row and returns
// the exercises in file order. The first bad record aborts the parse.
func Parse(r io.Reader) ([]models.Exercise, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedRecordError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, csvError(err)
	}

	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)

		ex, err := parseRecord(rec, cols, line)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}

	return exercises, nil
}

// headerIndex maps each required column to its position in the header row.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if canon, ok := columnAliases[name]; ok {
			name = canon
		}
		cols[name] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedRecordError{
			Line: 1,
			Err:  fmt.Errorf("header missing column(s): %s", strings.Join(missing, ", ")),
		}
	}
	return cols, nil
}

func parseRecord(rec []string, cols map[string]int, line int) (models.Exercise, error) {
	field := func(name string) string {
		return strings.TrimSpace(rec[cols[name]])
	}

	idStr := field(ColID)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return models.Exercise{}, &MalformedRecordError{Line: line, Field: ColID, Value: idStr, Err: errors.New("not an integer")}
	}

	title := field(ColTitle)
	if title == "" {
		return models.Exercise{}, &MalformedRecordError{Line: line, Field: ColTitle, Err: errors.New("required")}
	}

	timeStr := field(ColTimeMins)
	mins, err := strconv.Atoi(timeStr)
	if err != nil {
		return models.Exercise{}, &MalformedRecordError{Line: line, Field: ColTimeMins, Value: timeStr, Err: errors.New("not an integer")}
	}
	if mins <= 0 {
		return models.Exercise{}, &MalformedRecordError{Line: line, Field: ColTimeMins, Value: timeStr, Err: errors.New("must be positive")}
	}

	return models.Exercise{
		ID:          id,
		Title:       title,
		Tags:        splitList(field(ColTags)),
		TimeMinutes: mins,
		Equipment:   splitList(field(ColEquipment)),
		Muscles:     splitList(field(ColMuscles)),
	}, nil
}

// splitList splits a semicolon list, trimming items and dropping empty ones.
// An empty column yields an empty, non-nil slice.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, listSep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// csvError converts an encoding/csv failure into a MalformedRecordError.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedRecordError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("reading catalog: %w", err)
}

// DuplicateTitles returns titles that appear more than once, in first-seen order.
// The planner treats duplicates as a single weekly slot.
func DuplicateTitles(exercises []models.Exercise) []string {
	seen := make(map[string]int, len(exercises))
	var dups []string
	for _, ex := range exercises {
		seen[ex.Title]++
		if seen[ex.Title] == 2 {
			dups = append(dups, ex.Title)
		}
	}
	return dups
}
