package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/licensegate/licensegate/internal"
	"github.com/licensegate/licensegate/licensegate"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"

	StatusPass = "pass"
	StatusFail = "fail"
)

// Report is the document emitted for a validation run.
type Report struct {
	Tool     string                   `json:"tool"`
	Version  string                   `json:"version"`
	Project  string                   `json:"project"`
	Policy   licensegate.PolicyConfig `json:"policy"`
	Status   string                   `json:"status"`
	Aborted  bool                     `json:"aborted"`
	Summary  licensegate.Summary      `json:"summary"`
	Verdicts []licensegate.Verdict    `json:"verdicts"`
}

func NewReport(project string, policy licensegate.PolicyConfig, result *licensegate.EvaluationResult) Report {
	status := StatusPass
	if result.Failed() {
		status = StatusFail
	}
	return Report{
		Tool:     internal.ApplicationName,
		Version:  internal.ApplicationVersion(),
		Project:  project,
		Policy:   policy,
		Status:   status,
		Aborted:  result.Aborted,
		Summary:  result.Summary(),
		Verdicts: result.Verdicts,
	}
}

// RenderJSON renders the report as indented JSON.
func RenderJSON(report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteJSONFile writes the report as indented JSON to path.
func WriteJSONFile(report Report, path string) error {
	rendered, err := RenderJSON(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// RenderTable renders a human-readable summary and, when the run failed, a
// table of the failing dependencies.
func RenderTable(report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", report.Project)
	fmt.Fprintf(&b, "Status:  %s\n", formatStatus(report.Status))
	fmt.Fprintf(&b, "Summary: %d dependencies, %d allowed, %d failed, %d unlicensed",
		report.Summary.Total,
		report.Summary.Allowed,
		report.Summary.Banned,
		report.Summary.Unlicensed)

	failed := make([]licensegate.Verdict, 0)
	for _, v := range report.Verdicts {
		if !v.Pass() {
			failed = append(failed, v)
		}
	}
	if len(failed) == 0 {
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(renderVerdictTable(failed))
	return b.String()
}

func renderVerdictTable(verdicts []licensegate.Verdict) string {
	t := table.NewWriter()

	t.Style().Options.SeparateHeader = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateFooter = false
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"DEPENDENCY", "VERSION", "OUTCOME", "LICENSES"})

	for _, v := range verdicts {
		t.AppendRow(table.Row{
			v.Dependency.GroupID + ":" + v.Dependency.ArtifactID,
			v.Dependency.Version,
			color.Red.Sprint(v.Outcome),
			formatLicenses(v.Licenses),
		})
	}

	return t.Render()
}

func formatLicenses(licenses []licensegate.License) string {
	if len(licenses) == 0 {
		return color.Red.Sprint("(no licenses declared)")
	}
	names := licensegate.LicenseNames(licenses)
	if len(names) > 3 {
		return strings.Join(names[:3], ", ") + color.Gray.Sprintf(" (+%d more)", len(names)-3)
	}
	return strings.Join(names, ", ")
}

func formatStatus(status string) string {
	switch status {
	case StatusPass:
		return color.Green.Sprint("✓ PASS")
	case StatusFail:
		return color.Red.Sprint("✗ FAIL")
	default:
		return strings.ToUpper(status)
	}
}
