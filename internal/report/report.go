// Package report renders computed transferability reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spigell/transferability/internal/metrics"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatText}

// ParseFormat accepts the format names case-insensitively. "yml" is an alias of yaml
// and an empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension returns the file extension used by DumpToFile.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

func Write(w io.Writer, report *metrics.FullReport, format Format) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// DumpToFile writes the report into a new report_*.<ext> file inside dir and
// returns its name. An empty dir means the system temp directory.
func DumpToFile(dir string, report *metrics.FullReport, format Format) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	file, err := os.CreateTemp(dir, "report_*."+format.Extension())
	if err != nil {
		return "", err
	}

	if err := Write(file, report, format); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("write %s: %w", file.Name(), err)
	}

	// Close flushes the file, a failure here means the dump is incomplete.
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close %s: %w", file.Name(), err)
	}

	return file.Name(), nil
}

func writeText(w io.Writer, report *metrics.FullReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Job title:\t%s\n", report.JobTitle)
	fmt.Fprintf(tw, "Analysis date:\t%s\n", report.AnalysisDate.Format(time.RFC3339))
	fmt.Fprintf(tw, "Risk category:\t%s\n", report.RiskCategory)
	fmt.Fprintf(tw, "Quadrant:\t%s (x=%.1f, y=%.1f)\n", report.Quadrant.Label, report.Quadrant.X, report.Quadrant.Y)
	fmt.Fprintf(tw, "Automation score:\t%d\n", report.AutomationScore)
	fmt.Fprintf(tw, "Augmentation score:\t%d\n", report.AugmentationScore)
	fmt.Fprintf(tw, "Transferability index:\t%d\n", report.TransferabilityIndex)
	fmt.Fprintf(tw, "AI readiness score:\t%d\n", report.AIReadinessScore)

	if summary := strings.TrimSpace(report.ExecutiveSummary); summary != "" {
		fmt.Fprintf(tw, "\n%s\n", summary)
	}

	if len(report.Tasks) > 0 {
		fmt.Fprintf(tw, "\nTASK\tEXPOSURE\tAUGMENTATION\tX\tY\n")
		for _, task := range report.Tasks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\n",
				task.Description, task.ExposureLevel, task.AugmentationPotential, task.X, task.Y)
		}
	}

	if len(report.Skills) > 0 {
		fmt.Fprintf(tw, "\nSKILL\tCLASS\n")
		for _, skill := range report.Skills {
			fmt.Fprintf(tw, "%s\t%s\n", skill.Name, skill.Classification)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Role redesign", report.Recommendations.RoleRedesign},
		{"Reskilling priorities", report.Recommendations.ReskillingPriorities},
		{"Tech integration", report.Recommendations.TechIntegration},
	}
	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n", section.title); err != nil {
			return err
		}
		for _, item := range section.items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
	}

	return nil
}

// Entry is a report together with where it came from.
type Entry struct {
	Source string              `json:"source" yaml:"source"`
	Report *metrics.FullReport `json:"report" yaml:"report"`
}

// WriteAll renders many reports. The text format is a one-line-per-report table.
func WriteAll(w io.Writer, entries []Entry, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "SOURCE\tJOB TITLE\tINDEX\tAUTOMATION\tAUGMENTATION\tREADINESS\tQUADRANT\tRISK\n")
		for _, entry := range entries {
			r := entry.Report
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
				entry.Source, r.JobTitle, r.TransferabilityIndex, r.AutomationScore,
				r.AugmentationScore, r.AIReadinessScore, r.Quadrant.Label, r.RiskCategory)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
