package sheetsapi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

var _ RowStore = (*SheetsRowStore)(nil)

// SheetsRowStore adapts one Google spreadsheet to the RowStore contract.
// Worksheets are created on first use, the way the rest of the bot expects
// an operator-managed sheet to behave.
type SheetsRowStore struct {
	api           *sheets.Service
	spreadsheetId string

	mu       sync.Mutex
	sheetIds map[string]int64
}

func NewSheetsRowStore(api *sheets.Service, spreadsheetId string) *SheetsRowStore {
	return &SheetsRowStore{
		api:           api,
		spreadsheetId: spreadsheetId,
		sheetIds:      map[string]int64{},
	}
}

func (store *SheetsRowStore) ReadAll(ctx context.Context, table string) ([]map[string]string, error) {
	values, err := store.ReadAllValues(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, nil
	}
	header := values[0]
	records := make([]map[string]string, 0, len(values)-1)
	for _, row := range values[1:] {
		record := make(map[string]string, len(header))
		for col, name := range header {
			if col < len(row) {
				record[name] = row[col]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (store *SheetsRowStore) ReadAllValues(ctx context.Context, table string) ([][]string, error) {
	if err := store.ensureSheet(ctx, table); err != nil {
		return nil, err
	}
	resp, err := store.api.Spreadsheets.Values.Get(store.spreadsheetId, table).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", table, err)
	}
	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, strings.TrimSpace(fmt.Sprint(cell)))
		}
		values = append(values, cells)
	}
	return values, nil
}

func (store *SheetsRowStore) AppendRows(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if err := store.ensureSheet(ctx, table); err != nil {
		return err
	}
	valueRange := &sheets.ValueRange{Values: rows}
	_, err := store.api.Spreadsheets.Values.Append(store.spreadsheetId, table, valueRange).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append rows to sheet %s: %w", table, err)
	}
	return nil
}

func (store *SheetsRowStore) DeleteRowsByIndex(ctx context.Context, table string, indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	sheetId, err := store.sheetId(ctx, table)
	if err != nil {
		return err
	}

	// Rows are removed bottom-up, otherwise every deletion would shift the
	// indices of the rows still pending.
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	update := &sheets.BatchUpdateSpreadsheetRequest{}
	for _, idx := range sorted {
		update.Requests = append(update.Requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetId,
					Dimension:  "ROWS",
					StartIndex: int64(idx - 1),
					EndIndex:   int64(idx),
				},
			},
		})
	}
	_, err = store.api.Spreadsheets.BatchUpdate(store.spreadsheetId, update).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete rows from sheet %s: %w", table, err)
	}
	return nil
}

func (store *SheetsRowStore) EnsureHeaders(ctx context.Context, table string, header []string) error {
	values, err := store.ReadAllValues(ctx, table)
	if err != nil {
		return err
	}
	if len(values) > 0 && equalHeader(values[0], header) {
		return nil
	}
	row := make([]any, 0, len(header))
	for _, name := range header {
		row = append(row, name)
	}
	valueRange := &sheets.ValueRange{Values: [][]any{row}}
	_, err = store.api.Spreadsheets.Values.Update(store.spreadsheetId, table+"!A1", valueRange).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header of sheet %s: %w", table, err)
	}
	return nil
}

func (store *SheetsRowStore) sheetId(ctx context.Context, table string) (int64, error) {
	if err := store.ensureSheet(ctx, table); err != nil {
		return 0, err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.sheetIds[table], nil
}

func (store *SheetsRowStore) ensureSheet(ctx context.Context, table string) error {
	store.mu.Lock()
	_, known := store.sheetIds[table]
	store.mu.Unlock()
	if known {
		return nil
	}

	spreadsheet, err := store.api.Spreadsheets.Get(store.spreadsheetId).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet %s: %w", store.spreadsheetId, err)
	}
	store.mu.Lock()
	for _, sheet := range spreadsheet.Sheets {
		store.sheetIds[sheet.Properties.Title] = sheet.Properties.SheetId
	}
	_, known = store.sheetIds[table]
	store.mu.Unlock()
	if known {
		return nil
	}

	update := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: table}},
		}},
	}
	resp, err := store.api.Spreadsheets.BatchUpdate(store.spreadsheetId, update).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 400 {
			// Lost the race against a concurrent creator, re-resolve below.
			return store.refreshSheetIds(ctx, table)
		}
		return fmt.Errorf("failed to create sheet %s: %w", table, err)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil {
			store.sheetIds[table] = reply.AddSheet.Properties.SheetId
		}
	}
	return nil
}

func (store *SheetsRowStore) refreshSheetIds(ctx context.Context, table string) error {
	spreadsheet, err := store.api.Spreadsheets.Get(store.spreadsheetId).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet %s: %w", store.spreadsheetId, err)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, sheet := range spreadsheet.Sheets {
		store.sheetIds[sheet.Properties.Title] = sheet.Properties.SheetId
	}
	if _, ok := store.sheetIds[table]; !ok {
		return fmt.Errorf("sheet %s is still missing after creation attempt", table)
	}
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) < len(want) {
		return false
	}
	for i, name := range want {
		if got[i] != name {
			return false
		}
	}
	return true
}
