package vcfolio

import "context"

// RecordWriter persists extracted company records as tabular rows.
//
// Implementations must write either the whole batch or nothing: a run
// that aborts before producing records must not leave a partial output
// behind. Column order is url, name, description, source, location,
// domain; absent optional fields are written as empty values.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*Company) error
}
