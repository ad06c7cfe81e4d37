package batch

import (
	"fmt"
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/statement"
)

// Scheduler re-runs a directory sweep on a cron expression, grounded
// on the pack's cron.New + AddFunc + VerbosePrintfLogger wiring.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler builds a Scheduler that sweeps dir on spec (standard
// five-field cron syntax), invoking onReport after each sweep.
func NewScheduler(driver *statement.Driver, dir, spec string, layoutParams layout.Params, workers int, onReport func(*Report, error)) (*Scheduler, error) {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "[schedule] ", log.LstdFlags))))
	_, err := c.AddFunc(spec, func() {
		report, err := Run(driver, dir, layoutParams, workers)
		onReport(report, err)
	})
	if err != nil {
		return nil, fmt.Errorf("batch: schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled sweeps in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the scheduler, waiting for any in-flight sweep to finish.
func (s *Scheduler) Stop() { <-s.cron.Stop().Done() }
