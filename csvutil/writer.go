// Package csvutil implements vcfolio.RecordWriter on top of
// github.com/jszwec/csvutil.
package csvutil

import (
	"context"
	"os"

	"vcfolio"

	"github.com/jszwec/csvutil"
)

// Ensure Writer implements vcfolio.RecordWriter at compile time.
var _ vcfolio.RecordWriter = (*Writer)(nil)

// Writer writes company records to a CSV file. The batch is written to a
// temporary file and renamed into place, so an interrupted run never
// leaves a partial CSV behind.
type Writer struct {
	path string
}

// NewWriter creates a Writer that writes to path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRecords writes records to the configured path. The header row is
// written even for an empty batch. Column order follows the Company
// struct: url, name, description, source, location, domain.
func (w *Writer) WriteRecords(_ context.Context, records []*vcfolio.Company) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return vcfolio.Errorf(vcfolio.EINTERNAL, "failed to marshal records: %v", err)
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return vcfolio.Errorf(vcfolio.EINTERNAL, "failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return vcfolio.Errorf(vcfolio.EINTERNAL, "failed to rename %s: %v", tmp, err)
	}
	return nil
}
