// Package report publishes test results and attachments in the Allure results directory
// format, which the Allure command-line tool turns into an HTML report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diplom33/ui-harness/framework"

	"github.com/google/uuid"
)

// Allure statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusBroken  = "broken"
	StatusSkipped = "skipped"
)

// Result is one test result file.
type Result struct {
	UUID          string         `json:"uuid"`
	HistoryID     string         `json:"historyId"`
	Name          string         `json:"name"`
	FullName      string         `json:"fullName"`
	Description   string         `json:"description,omitempty"`
	Status        string         `json:"status"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Stage         string         `json:"stage"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	Parameters    []Parameter    `json:"parameters,omitempty"`
	Labels        []Label        `json:"labels,omitempty"`
}

type StatusDetails struct {
	Message string `json:"message,omitempty"`
}

type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AllureResults is a plugin that writes one result file per executed item, plus one file per
// attachment, into an Allure results directory.
type AllureResults struct {
	dir    string
	logger framework.Logger
	items  map[*framework.Item]*itemState
}

type itemState struct {
	start   time.Time
	reports framework.PhaseReports
}

// NewAllureResults creates the results directory if necessary. Problems writing individual
// results later are reported to logger and otherwise ignored.
func NewAllureResults(dir string, logger framework.Logger) (*AllureResults, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create Allure results directory: %w", err)
	}
	return &AllureResults{
		dir:    dir,
		logger: logger,
		items:  make(map[*framework.Item]*itemState),
	}, nil
}

func (a *AllureResults) MakeReport(item *framework.Item, report *framework.PhaseReport) {
	state, ok := a.items[item]
	if !ok {
		state = &itemState{start: time.Now().Add(-report.Duration)}
		a.items[item] = state
	}
	state.reports.Set(report)
	if report.Phase != framework.PhaseTeardown {
		return
	}
	delete(a.items, item)
	framework.BestEffort(a.logger, "writing Allure result for "+item.NodeID, func() error {
		return a.write(item, state, time.Now())
	})
}

func (a *AllureResults) write(item *framework.Item, state *itemState, stop time.Time) error {
	status, message := resultStatus(state.reports)
	result := Result{
		UUID:        uuid.NewString(),
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.NodeID)).String(),
		Name:        item.NodeID,
		FullName:    item.Name,
		Description: item.Doc,
		Status:      status,
		Stage:       "finished",
		Start:       state.start.UnixMilli(),
		Stop:        stop.UnixMilli(),
		Labels:      []Label{{Name: "framework", Value: "ui-harness"}},
	}
	if message != "" {
		result.StatusDetails = &StatusDetails{Message: message}
	}
	for _, k := range item.Params.SortedKeys() {
		result.Parameters = append(result.Parameters, Parameter{Name: k, Value: framework.ValueString(item.Params[k])})
	}

	for _, att := range item.Attachments {
		source := uuid.NewString() + "-attachment" + extensionFor(att.ContentType)
		if err := os.WriteFile(filepath.Join(a.dir, source), att.Data, 0o644); err != nil {
			return err
		}
		result.Attachments = append(result.Attachments, Attachment{Name: att.Name, Source: source, Type: att.ContentType})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(a.dir, result.UUID+"-result.json"), data, 0o644)
}

func resultStatus(reports framework.PhaseReports) (string, string) {
	for _, r := range []*framework.PhaseReport{reports.Setup, reports.Call, reports.Teardown} {
		if r == nil {
			continue
		}
		switch {
		case r.Outcome == framework.OutcomeError:
			return StatusBroken, errorMessage(r)
		case r.Outcome == framework.OutcomeFailed && r.Phase == framework.PhaseCall:
			return StatusFailed, errorMessage(r)
		case r.Outcome == framework.OutcomeFailed:
			return StatusBroken, errorMessage(r)
		case r.Outcome == framework.OutcomeSkipped:
			return StatusSkipped, r.SkipReason
		}
	}
	return StatusPassed, ""
}

func errorMessage(r *framework.PhaseReport) string {
	var lines []string
	for _, err := range r.Errors {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "text/plain":
		return ".txt"
	case "application/json":
		return ".json"
	}
	return ""
}
