package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/eyestrain/internal/report"
)

// jsonOutput is printed with --json.
type jsonOutput struct {
	Report report.Document `json:"report"`
	Files  report.Files    `json:"files"`
}

func (m *Monitor) print(r *report.Report, files report.Files) error {
	if m.cfg.Input.JSON {
		enc := json.NewEncoder(m.out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(jsonOutput{
			Report: r.Document(m.cfg.Location()),
			Files:  files,
		}); err != nil {
			return errPrintReport.Wrap(err)
		}

		return nil
	}

	if err := report.Print(m.out, r, m.cfg.Location()); err != nil {
		return errPrintReport.Wrap(err)
	}

	for _, path := range files.Paths() {
		fmt.Fprint(m.out, pterm.Success.Sprintfln("Report saved to %s", path))
	}

	return nil
}

// runReportCmd runs the user's command after the report is written. The
// report paths are passed in the environment.
func runReportCmd(command string, files report.Files, out io.Writer) error {
	if command == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(command)
	if err != nil {
		return errParseReportCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(os.Environ(),
		"EYESTRAIN_SUMMARY="+files.Summary,
		"EYESTRAIN_BUCKETS="+files.Buckets,
	)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errRunReportCmd.Wrap(err)
	}

	return nil
}
