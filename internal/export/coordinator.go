package export

import (
	"github.com/qmskit/qdoc/internal/errors"
)

// StatusFunc receives per-format success/failure as the sequence progresses.
type StatusFunc func(format Format, success bool)

// SaveFunc persists one artifact (file write, download trigger). It is the
// single side effect of a successful export step.
type SaveFunc func(a *Artifact) error

// Coordinator runs the fixed export sequence: docx, pdf (with revision
// table), pdf (clean), txt, xlsx, csv. The steps run strictly sequentially
// because the PDF captures toggle shared view state that other steps must not
// observe mid-mutation.
type Coordinator struct {
	exporters []Exporter
	save      SaveFunc
	status    StatusFunc
}

// NewCoordinator builds a coordinator over the standard exporter sequence.
func NewCoordinator(save SaveFunc, status StatusFunc) *Coordinator {
	return NewCoordinatorWith([]Exporter{
		&DOCXExporter{},
		NewPDFExporter(true),
		NewPDFExporter(false),
		&TXTExporter{},
		&XLSXExporter{},
		&CSVExporter{},
	}, save, status)
}

// NewCoordinatorWith builds a coordinator over an explicit exporter sequence.
func NewCoordinatorWith(exporters []Exporter, save SaveFunc, status StatusFunc) *Coordinator {
	return &Coordinator{exporters: exporters, save: save, status: status}
}

// Run executes the export sequence. Each step serializes, saves its artifact,
// and reports status. The first failure aborts the remaining steps and is
// returned with the failing format identified; this fail-fast policy is
// deliberate and must not be converted to a collect-all-results fan-out.
func (c *Coordinator) Run(src *Source) ([]*Artifact, error) {
	artifacts := make([]*Artifact, 0, len(c.exporters))
	for _, ex := range c.exporters {
		artifact, err := ex.Export(src)
		if err == nil && c.save != nil {
			if saveErr := c.save(artifact); saveErr != nil {
				err = wrapErr(ex.Format(), saveErr)
			}
		}

		if c.status != nil {
			c.status(ex.Format(), err == nil)
		}
		if err != nil {
			return artifacts, errors.NewExportFailed(string(ex.Format()), err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}
