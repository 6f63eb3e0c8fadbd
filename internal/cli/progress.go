package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ScanProgressReporter implements impact.ProgressReporter with a progress bar.
type ScanProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewScanProgressReporter creates a reporter; quiet suppresses all output.
func NewScanProgressReporter(quiet bool) *ScanProgressReporter {
	return &ScanProgressReporter{quiet: quiet}
}

func (r *ScanProgressReporter) OnScanStart(totalFiles int) {
	if r.quiet {
		return
	}
	r.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning dependents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (r *ScanProgressReporter) OnFileScanned(processed, totalFiles int, fileName string) {
	if r.quiet || r.bar == nil {
		return
	}
	r.bar.Add(1)
}

func (r *ScanProgressReporter) OnScanComplete(dependents int, duration time.Duration) {
	if r.quiet {
		return
	}
	log.Printf("Found %d dependents in %s", dependents, duration.Round(time.Millisecond))
}
