package sheetsapi

import "context"

// RowStore is the narrow view of the spreadsheet the rest of the bot
// consumes: header-keyed records, raw rows for positional deletes, appends
// and 1-based row deletion.
type RowStore interface {
	// ReadAll returns the sheet rows below the header as header-keyed maps,
	// in sheet order.
	ReadAll(ctx context.Context, table string) ([]map[string]string, error)
	// ReadAllValues returns every row of the sheet, header included.
	ReadAllValues(ctx context.Context, table string) ([][]string, error)
	AppendRows(ctx context.Context, table string, rows [][]any) error
	// DeleteRowsByIndex deletes 1-based sheet rows. Indices are applied in
	// descending order so pending deletions do not shift.
	DeleteRowsByIndex(ctx context.Context, table string, indices []int) error
	// EnsureHeaders creates the sheet if missing and rewrites its first row
	// when it does not match the wanted header.
	EnsureHeaders(ctx context.Context, table string, header []string) error
}
