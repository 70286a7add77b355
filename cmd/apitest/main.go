// Command apitest runs a smoke test suite against a running program API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key secret
package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status         string   `json:"status"`
	Commemorations int      `json:"commemorations"`
	ScheduleDays   int      `json:"schedule_days"`
	Warnings       []string `json:"warnings"`
}

// DayEntries is the response for /api/synaxaire/{month}/{day}
type DayEntries struct {
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Records   []struct {
		Description string `json:"description"`
		Category    string `json:"category"`
	} `json:"records"`
}

// MonthResponse is the response for /api/v1/program/{year}/{month}
type MonthResponse struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Title string `json:"title"`
	Days  []struct {
		Coptic struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Day   int `json:"day"`
		} `json:"coptic"`
		Weekday       int    `json:"weekday"`
		ScheduleEvent string `json:"schedule_event"`
	} `json:"days"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Synaxaire Program API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testSynaxaire()
	tr.testMonths()
	tr.testICS()
	tr.testGenerate()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	switch health.Status {
	case "healthy":
		tr.recordSuccess(fmt.Sprintf("Health check passed (%d commemorations, %d schedule days)",
			health.Commemorations, health.ScheduleDays))
	case "degraded":
		tr.recordError("Health", fmt.Sprintf("Degraded: %s", strings.Join(health.Warnings, "; ")))
	default:
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}

	if _, err := tr.get("/api/test"); err != nil {
		tr.recordError("Ping", err.Error())
	} else {
		tr.recordSuccess("Ping returned success")
	}
}

func (tr *TestRunner) testSynaxaire() {
	tr.printSection("Synaxaire Lookups")

	testCases := []struct {
		month, day int
		name       string
	}{
		{1, 1, "Tout"},
		{4, 29, "Kiahk"},
		{13, 6, "Nasie"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/synaxaire/%d/%d", tc.month, tc.day))
		if err != nil {
			tr.recordError(fmt.Sprintf("%d/%d", tc.month, tc.day), err.Error())
			continue
		}

		var data DayEntries
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(fmt.Sprintf("%d/%d", tc.month, tc.day), err.Error())
			continue
		}

		if data.MonthName != tc.name {
			tr.recordError(fmt.Sprintf("%d/%d", tc.month, tc.day),
				fmt.Sprintf("Expected month '%s', got '%s'", tc.name, data.MonthName))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%d %s: %d record(s)", tc.day, data.MonthName, len(data.Records)))
		if tr.verbose {
			for _, rec := range data.Records {
				fmt.Printf("    - [%s] %s\n", rec.Category, rec.Description)
			}
		}
	}
}

func (tr *TestRunner) testMonths() {
	tr.printSection("Resolved Months")

	testCases := []struct {
		year, month int
		days        int
		description string
	}{
		{2024, 1, 31, "January with the Nativity (29 Kiahk)"},
		{2024, 2, 29, "Leap February"},
		{2023, 2, 28, "Common February"},
		{2024, 9, 30, "Coptic new year (Nayrouz on the 11th)"},
	}

	for _, tc := range testCases {
		label := fmt.Sprintf("%d-%02d", tc.year, tc.month)
		resp, err := tr.get(fmt.Sprintf("/api/v1/program/%d/%d", tc.year, tc.month))
		if err != nil {
			tr.recordError(label, err.Error())
			continue
		}

		var data MonthResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(label, err.Error())
			continue
		}

		if len(data.Days) != tc.days {
			tr.recordError(label, fmt.Sprintf("Expected %d days, got %d", tc.days, len(data.Days)))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%s: %d days (%s)", label, len(data.Days), tc.description))
		if tr.verbose {
			for _, d := range data.Days {
				if d.ScheduleEvent != "" {
					fmt.Printf("    %d/%d/%d  %s\n", d.Coptic.Day, d.Coptic.Month, d.Coptic.Year,
						strings.ReplaceAll(d.ScheduleEvent, "\n", " / "))
				}
			}
		}
	}
}

func (tr *TestRunner) testICS() {
	tr.printSection("iCalendar Export")

	body, resp, err := tr.fetch(http.MethodGet, "/api/v1/program/2024/2.ics", nil)
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	if resp.StatusCode != http.StatusOK {
		tr.recordError("ICS", fmt.Sprintf("HTTP %d", resp.StatusCode))
		return
	}

	cal, err := ical.NewDecoder(bytes.NewReader(body)).Decode()
	if err != nil {
		tr.recordError("ICS", fmt.Sprintf("decode: %v", err))
		return
	}

	if n := len(cal.Events()); n == 29 {
		tr.recordSuccess("February 2024 exported as 29 events")
	} else {
		tr.recordError("ICS", fmt.Sprintf("Expected 29 events, got %d", n))
	}
}

func (tr *TestRunner) testGenerate() {
	tr.printSection("Document Generation")

	payload := `{"year": 2024, "month": 1, "french_verse": "Je suis le chemin", "arabic_verse": "أنا هو الطريق"}`
	body, resp, err := tr.fetch(http.MethodPost, "/api/generate-program", strings.NewReader(payload))
	if err != nil {
		tr.recordError("Generate", err.Error())
		return
	}
	if resp.StatusCode != http.StatusOK {
		tr.recordError("Generate", fmt.Sprintf("HTTP %d", resp.StatusCode))
		return
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		tr.recordError("Generate", fmt.Sprintf("not a docx archive: %v", err))
		return
	}

	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	if !found {
		tr.recordError("Generate", "word/document.xml missing")
		return
	}

	tr.recordSuccess(fmt.Sprintf("January 2024 docx: %d bytes, %s",
		len(body), resp.Header.Get("Content-Disposition")))
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		method, path, body string
		want               int
		description        string
	}{
		{http.MethodGet, "/api/synaxaire/14/1", "", http.StatusBadRequest, "Coptic month 14 rejected"},
		{http.MethodGet, "/api/synaxaire/13/7", "", http.StatusBadRequest, "Nasie day 7 rejected"},
		{http.MethodGet, "/api/v1/program/2024/13", "", http.StatusBadRequest, "Month 13 rejected"},
		{http.MethodGet, "/api/v1/program/100/1", "", http.StatusBadRequest, "Year before the Coptic era rejected"},
		{http.MethodPost, "/api/generate-program", `{"month": 1}`, http.StatusBadRequest, "Missing year rejected"},
		{http.MethodPost, "/api/generate-program", `not json`, http.StatusBadRequest, "Malformed body rejected"},
		{http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound, "Unknown route returns 404"},
	}

	for _, tc := range cases {
		var body io.Reader
		if tc.body != "" {
			body = strings.NewReader(tc.body)
		}

		_, resp, err := tr.fetch(tc.method, tc.path, body)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		if resp.StatusCode == tc.want {
			tr.recordSuccess(tc.description)
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected HTTP %d, got %d", tc.want, resp.StatusCode))
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	body, _, err := tr.fetch(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

// fetch sends one request, waiting out the generation rate limit when the
// server answers 429.
func (tr *TestRunner) fetch(method, path string, body io.Reader) ([]byte, *http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, nil, err
		}
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequest(method, tr.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tr.apiKey != "" {
			req.Header.Set("X-API-Key", tr.apiKey)
		}

		resp, err := tr.client.Do(req)
		if err != nil {
			return nil, nil, err
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("read error: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= 3 {
			return data, resp, nil
		}

		wait, err := strconv.Atoi(resp.Header.Get("Retry-After"))
		if err != nil || wait < 1 {
			wait = 1
		}
		time.Sleep(time.Duration(wait) * time.Second)
	}
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Println("All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for the generation routes")
	verbose := flag.Bool("v", false, "Verbose output (show records and events)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
