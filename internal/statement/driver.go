package statement

import (
	"fmt"

	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/format"
	"github.com/statementcore/corebank/internal/fragment"
	"github.com/statementcore/corebank/internal/preamble"
	"github.com/statementcore/corebank/internal/table"
)

// Extractor is the per-field callback set C6/C7/C8 are injected as, so
// Driver stays decoupled from their concrete packages for testing.
type Extractor struct {
	Preamble    func(fragment.Stream, config.Config, *format.Registry, *Data)
	Table       func(fragment.Stream, config.Config, *format.Registry, *Data)
	PostProcess func(config.Config, *Data)
}

// Driver orchestrates C6→C7→C8 across candidate configs and selects
// the first error-free StatementData (spec.md §4.8).
type Driver struct {
	Configs   *config.Registry
	Formats   *format.Registry
	Extractor Extractor
}

// NewDriver builds a Driver with the real C6/C7/C8 pipeline wired in.
func NewDriver(configs *config.Registry, formats *format.Registry, postProcess func(config.Config, *Data)) *Driver {
	return &Driver{
		Configs: configs,
		Formats: formats,
		Extractor: Extractor{
			Preamble:    preamble.Extract,
			Table:       table.Extract,
			PostProcess: postProcess,
		},
	}
}

// Run tries every config applicable to doc in registration order,
// returning the first error-free StatementData. If none is error-free
// it returns the full attempt list for diagnostics, plus
// config.ErrNoApplicableConfig if no config matched at all.
func (d *Driver) Run(doc fragment.Stream) (best *Data, attempts []*Data, err error) {
	candidates := d.Configs.Applicable(doc)
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("statement: %w", config.ErrNoApplicableConfig)
	}

	for _, cfg := range candidates {
		data := &Data{ConfigKey: cfg.Key}
		d.Extractor.Preamble(doc, cfg, d.Formats, data)
		d.Extractor.Table(doc, cfg, d.Formats, data)
		if d.Extractor.PostProcess != nil {
			d.Extractor.PostProcess(cfg, data)
		}
		attempts = append(attempts, data)
		if data.ErrorFree() && best == nil {
			best = data
		}
	}

	return best, attempts, nil
}
