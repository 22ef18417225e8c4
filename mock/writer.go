package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of vcfolio.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*vcfolio.Company) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*vcfolio.Company) error {
	return w.WriteRecordsFn(ctx, records)
}
