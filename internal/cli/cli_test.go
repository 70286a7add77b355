package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/synaxaire-program/internal/program"
)

const testCommemorations = "coptic_month,coptic_day,month_name,description,category,is_martyr\n" +
	"4,28,Kiahk,Saints Innocents,Martyre,1\n" +
	"4,28,Kiahk,Saint Jean,Décès,0\n" +
	"13,6,Nasie,Jour intercalaire,Autre,0\n"

const testSchedule = "week_day_num,event,time\n" +
	"7,Divine Liturgy,10:00\n"

// testFiles writes the CSV tables to a temp dir and returns the flags
// pointing at them.
func testFiles(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()
	c := filepath.Join(dir, "synaxaire.csv")
	s := filepath.Join(dir, "schedule.csv")
	if err := os.WriteFile(c, []byte(testCommemorations), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s, []byte(testSchedule), 0o644); err != nil {
		t.Fatal(err)
	}
	return []string{"--commemorations", c, "--schedule", s}
}

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("output = %q", out)
	}
}

func TestLookup_Text(t *testing.T) {
	args := append([]string{"lookup", "4", "28"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	for _, want := range []string{"28 Kiahk", "Martyrs", "- Saints Innocents", "Saints", "- Saint Jean"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLookup_YAML(t *testing.T) {
	args := append([]string{"lookup", "13", "6", "--format", "yaml"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}

	var entries program.DayEntries
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if entries.MonthName != "Nasie" || len(entries.Commemorations.Other) != 1 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLookup_Invalid(t *testing.T) {
	args := append([]string{"lookup", "13", "7"}, testFiles(t)...)
	_, _, err := run(t, args...)
	if program.Kind(err) != program.KindValidation {
		t.Errorf("lookup 13 7 error = %v, want validation error", err)
	}

	args = append([]string{"lookup", "4", "28", "--format", "xml"}, testFiles(t)...)
	if _, _, err := run(t, args...); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestLookup_Month(t *testing.T) {
	args := append([]string{"lookup", "4"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	for _, want := range []string{"28 Kiahk", "- Saints Innocents", "- Saint Jean"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	args = append([]string{"lookup", "1", "-f", "json"}, testFiles(t)...)
	out, _, err = run(t, args...)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	var month program.MonthEntries
	if err := json.Unmarshal([]byte(out), &month); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if month.MonthName != "Tout" || month.Days == nil || len(month.Days) != 0 {
		t.Errorf("month = %+v", month)
	}

	args = append([]string{"lookup", "14"}, testFiles(t)...)
	if _, _, err := run(t, args...); program.Kind(err) != program.KindValidation {
		t.Errorf("lookup 14 error = %v, want validation error", err)
	}
}

func TestConvert(t *testing.T) {
	out, _, err := run(t, "convert", "2024-01-07", "2023-09-11", "2023-09-12")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	tests := []struct {
		line  int
		parts []string
	}{
		{0, []string{"2024-01-07", "Dimanche 07-01", "28 Kiahk 1740", "(Nasie 5)"}},
		{1, []string{"2023-09-11", "Lundi 11-09", "6 Nasie 1739", "(Nasie 6)"}},
		{2, []string{"2023-09-12", "Mardi 12-09", "1 Tout 1740"}},
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	for _, tt := range tests {
		for _, want := range tt.parts {
			if !strings.Contains(lines[tt.line], want) {
				t.Errorf("line %d = %q, missing %q", tt.line, lines[tt.line], want)
			}
		}
	}
}

func TestConvert_JSON(t *testing.T) {
	out, _, err := run(t, "convert", "2023-09-11", "-f", "json")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	var dates []ConvertedDate
	if err := json.Unmarshal([]byte(out), &dates); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(dates) != 1 {
		t.Fatalf("got %d dates, want 1", len(dates))
	}
	d := dates[0]
	if d.Coptic.Year != 1739 || d.Coptic.Month != 13 || d.Coptic.Day != 6 || d.NasieDays != 6 {
		t.Errorf("date = %+v", d)
	}
}

func TestConvert_Invalid(t *testing.T) {
	for _, arg := range []string{"2024-02-30", "07/01/2024", "yesterday"} {
		if _, _, err := run(t, "convert", arg); program.Kind(err) != program.KindValidation {
			t.Errorf("convert %s error = %v, want validation error", arg, err)
		}
	}
}

func TestMonth_JSON(t *testing.T) {
	args := append([]string{"month", "2024", "1", "-f", "json"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("month error = %v", err)
	}

	var days []program.ResolvedDay
	if err := json.Unmarshal([]byte(out), &days); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("days = %d, want 31", len(days))
	}
	if d := days[6]; d.ScheduleEvent != "Divine Liturgy" || len(d.Commemorations.Martyrs) != 1 {
		t.Errorf("7 January = %+v", d)
	}
}

func TestMonth_Text(t *testing.T) {
	args := append([]string{"month", "2024", "2"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("month error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 30 {
		t.Errorf("lines = %d, want header + 29 days", len(lines))
	}
	if !strings.Contains(lines[1], "2024-02-01") || !strings.Contains(lines[1], "Jeudi") {
		t.Errorf("first day line = %q", lines[1])
	}
}

func TestMonth_Invalid(t *testing.T) {
	_, _, err := run(t, "month", "2024", "13")
	if program.Kind(err) != program.KindValidation {
		t.Errorf("month 2024 13 error = %v, want validation error", err)
	}
}

func TestMonth_MissingTablesWarns(t *testing.T) {
	dir := t.TempDir()
	out, stderr, err := run(t, "month", "2024", "1",
		"--commemorations", filepath.Join(dir, "missing.csv"),
		"--schedule", filepath.Join(dir, "missing-too.csv"),
	)
	if err != nil {
		t.Fatalf("month error = %v", err)
	}
	if strings.Count(stderr, "warning:") != 2 {
		t.Errorf("stderr = %q, want two warnings", stderr)
	}
	if !strings.Contains(out, "2024-01-31") {
		t.Error("month still resolves with empty tables")
	}
}

func TestMonth_EnvironmentPaths(t *testing.T) {
	files := testFiles(t)
	t.Setenv("COMMEMORATIONS_PATH", files[1])
	t.Setenv("SCHEDULE_PATH", files[3])

	out, stderr, err := run(t, "lookup", "4", "28")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	if stderr != "" || !strings.Contains(out, "Saints Innocents") {
		t.Errorf("stdout = %q, stderr = %q", out, stderr)
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "janvier.docx")
	args := append([]string{"generate", "--year", "2024", "--month", "1",
		"--french-verse", "Au commencement", "--out", out}, testFiles(t)...)

	stdout, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(stdout, "31 days") {
		t.Errorf("stdout = %q", stdout)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a docx: %v", err)
	}
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	if !found {
		t.Error("docx has no word/document.xml")
	}
}

func TestGenerate_ICS(t *testing.T) {
	out := filepath.Join(t.TempDir(), "feed.ics")
	args := append([]string{"generate", "--year", "2024", "--month", "2", "--format", "ics", "-o", out}, testFiles(t)...)

	if _, _, err := run(t, args...); err != nil {
		t.Fatalf("generate error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "BEGIN:VEVENT"); n != 29 {
		t.Errorf("VEVENT count = %d, want 29", n)
	}
}

func TestGenerate_Invalid(t *testing.T) {
	if _, _, err := run(t, "generate", "--year", "2024", "--month", "0"); program.Kind(err) != program.KindValidation {
		t.Errorf("month 0 error = %v, want validation error", err)
	}
	if _, _, err := run(t, "generate", "--month", "1"); err == nil {
		t.Error("missing --year accepted")
	}
}

func TestCoverage_Text(t *testing.T) {
	args := append([]string{"coverage"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}

	for _, want := range []string{
		"Coptic days:     366",
		"Commemorations:  3",
		"Missing days:    364",
		"Kiahk        1/30  missing 1-27, 29-30",
		"Nasie        1/ 6  missing 1-5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCoverage_JSON(t *testing.T) {
	args := append([]string{"coverage", "-f", "json"}, testFiles(t)...)
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}

	var report program.CoverageReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.TotalDays != 366 || report.Covered != 2 || len(report.Months) != 13 {
		t.Errorf("report = %+v", report)
	}
}

func TestCoverage_Strict(t *testing.T) {
	args := append([]string{"coverage", "--strict"}, testFiles(t)...)
	_, _, err := run(t, args...)
	if !errors.Is(err, ErrCoverageGaps) {
		t.Errorf("err = %v, want ErrCoverageGaps", err)
	}
}

func TestDayRanges(t *testing.T) {
	tests := []struct {
		days []int
		want string
	}{
		{[]int{5}, "5"},
		{[]int{1, 2, 3, 7, 9, 10}, "1-3, 7, 9-10"},
		{[]int{}, ""},
	}

	for _, tt := range tests {
		if got := dayRanges(tt.days); got != tt.want {
			t.Errorf("dayRanges(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
