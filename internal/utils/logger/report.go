package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// InstallReport collects per-package outcomes for one setup run.
type InstallReport struct {
	RunID string
	Title string
	Items []string
}

var GlobalInstallReport InstallReport
var ReportPath = "/var/log/wifi-tester-setup"

func init() {
	GlobalInstallReport = InstallReport{
		RunID: uuid.NewString(),
		Title: "SetupRun",
		Items: []string{},
	}
}

// Record appends one outcome line to the global report.
func Record(format string, a ...any) {
	GlobalInstallReport.Items = append(GlobalInstallReport.Items, fmt.Sprintf(format, a...))
}

// WriteReportToFile writes the GlobalInstallReport to a text file, one
// outcome per line. The run ID is appended to the filename, e.g.
// setup-SetupRun-<id>.txt. Writing the report is best-effort; callers are
// expected to log and continue on error.
func WriteReportToFile() error {
	if err := os.MkdirAll(ReportPath, 0755); err != nil {
		return fmt.Errorf("creating report path: %w", err)
	}

	title := GlobalInstallReport.Title
	if title == "" {
		title = "untitled"
	}
	safeTitle := ""
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safeTitle += string(r)
		} else {
			safeTitle += "_"
		}
	}

	reportFullPath := filepath.Join(ReportPath,
		fmt.Sprintf("setup-%s-%s.txt", safeTitle, GlobalInstallReport.RunID))

	f, err := os.OpenFile(reportFullPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	for _, item := range GlobalInstallReport.Items {
		if _, err := fmt.Fprintln(f, item); err != nil {
			return fmt.Errorf("writing to file: %w", err)
		}
	}

	GlobalInstallReport.Items = []string{}
	if _, err := fmt.Fprintln(f); err != nil {
		return fmt.Errorf("writing new line to file: %w", err)
	}

	return nil
}
