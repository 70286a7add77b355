package synaxaire

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
)

// Column names of the commemorations source.
const (
	ColCopticMonth = "coptic_month"
	ColCopticDay   = "coptic_day"
	ColMonthName   = "month_name"
	ColDescription = "description"
	ColCategory    = "category"
	ColIsMartyr    = "is_martyr"
)

// Column names of the weekly schedule source.
const (
	ColWeekday = "week_day_num"
	ColEvent   = "event"
	ColTime    = "time"
)

// LoadCommemorationsCSV reads the commemorations source at path.
// Every failure is reported as a *DataLoadError.
func LoadCommemorationsCSV(path string) ([]Commemoration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Table: TableCommemorations, Source: path, Err: err}
	}
	defer f.Close()

	records, err := ReadCommemorations(f)
	if err != nil {
		return nil, &DataLoadError{Table: TableCommemorations, Source: path, Err: err}
	}
	return records, nil
}

// ReadCommemorations parses commemoration rows from CSV with a header line.
func ReadCommemorations(r io.Reader) ([]Commemoration, error) {
	rows, err := readRows(r, ColCopticMonth, ColCopticDay, ColDescription, ColCategory, ColIsMartyr)
	if err != nil {
		return nil, err
	}

	records := make([]Commemoration, 0, len(rows))
	for _, row := range rows {
		month, err := row.int(ColCopticMonth)
		if err != nil {
			return nil, err
		}
		day, err := row.int(ColCopticDay)
		if err != nil {
			return nil, err
		}
		if !calendar.ValidCopticDay(month, day) {
			return nil, fmt.Errorf("line %d: coptic date %d/%d does not exist", row.line, month, day)
		}
		martyr, err := parseFlag(row.get(ColIsMartyr))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", row.line, ColIsMartyr, err)
		}

		category := ParseCategory(row.get(ColCategory))
		records = append(records, Commemoration{
			CopticMonth: month,
			CopticDay:   day,
			MonthName:   row.get(ColMonthName),
			Description: row.get(ColDescription),
			Category:    category,
			IsMartyr:    martyr || category == CategoryMartyrdom,
		})
	}
	return records, nil
}

// LoadScheduleCSV reads the weekly schedule source at path.
// Every failure is reported as a *DataLoadError.
func LoadScheduleCSV(path string) ([]ScheduleEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Table: TableSchedule, Source: path, Err: err}
	}
	defer f.Close()

	entries, err := ReadSchedule(f)
	if err != nil {
		return nil, &DataLoadError{Table: TableSchedule, Source: path, Err: err}
	}
	return entries, nil
}

// ReadSchedule parses weekly schedule rows from CSV with a header line.
func ReadSchedule(r io.Reader) ([]ScheduleEntry, error) {
	rows, err := readRows(r, ColWeekday, ColEvent, ColTime)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]int)
	entries := make([]ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		weekday, err := row.int(ColWeekday)
		if err != nil {
			return nil, err
		}
		if weekday < 1 || weekday > 7 {
			return nil, fmt.Errorf("line %d: weekday %d out of range 1-7", row.line, weekday)
		}
		if prev, dup := seen[weekday]; dup {
			return nil, fmt.Errorf("line %d: weekday %d already defined on line %d", row.line, weekday, prev)
		}
		seen[weekday] = row.line

		entries = append(entries, ScheduleEntry{
			Weekday: weekday,
			Time:    row.get(ColTime),
			Event:   normalizeNewlines(row.get(ColEvent)),
		})
	}
	return entries, nil
}

type csvRow struct {
	line   int
	fields []string
	cols   map[string]int
}

func (r csvRow) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r csvRow) int(col string) (int, error) {
	v := r.get(col)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %q is not an integer", r.line, col, v)
	}
	return n, nil
}

// readRows reads a header line, checks the required columns are present
// and returns the remaining rows.
func readRows(r io.Reader, required ...string) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header line")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []csvRow
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(fields) {
			continue
		}
		rows = append(rows, csvRow{line: line, fields: fields, cols: cols})
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "oui", "y":
		return true, nil
	case "0", "false", "no", "non", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean flag", v)
	}
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
