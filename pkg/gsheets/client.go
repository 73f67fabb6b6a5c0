package gsheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is a thin wrapper around the Google Sheets API for one spreadsheet.
// Tables are worksheet tabs addressed by name; row 1 of each tab is the
// header row.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	debug         bool
}

// NewClient constructs a Sheets client authenticated with a service-account
// credentials file. The account needs editor access to the spreadsheet.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		debug:         os.Getenv("ENV") == "development",
	}, nil
}

// ReadAllRecords reads the whole table and returns one string-keyed record
// per data row. Header cells are trimmed; rows shorter than the header are
// padded with empty strings. All values are returned as display text; any
// numeric coercion is the caller's responsibility.
func (c *Client) ReadAllRecords(ctx context.Context, table string) ([]map[string]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %q: %w", table, err)
	}
	if c.debug {
		log.Debug().Str("table", table).Int("rows", len(resp.Values)).Msg("[SHEETS] Read all records")
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(cellString(cell))
	}

	records := make([]map[string]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = cellString(row[i])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadHeader returns the values of row 1, trimmed, in physical column order.
func (c *Client) ReadHeader(ctx context.Context, table string) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %q: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(cellString(cell))
	}
	return header, nil
}

// AppendRow appends one row at the end of the table.
func (c *Client) AppendRow(ctx context.Context, table string, values []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %q: %w", table, err)
	}
	if c.debug {
		log.Debug().Str("table", table).Int("cells", len(values)).Msg("[SHEETS] Appended row")
	}
	return nil
}

// WriteRange overwrites a contiguous cell range with a single row of values.
// Rows and columns are 1-based.
func (c *Client) WriteRange(ctx context.Context, table string, startRow, startCol, endRow, endCol int, values []any) error {
	rng := fmt.Sprintf("%s!%s%d:%s%d", table, columnLetter(startCol), startRow, columnLetter(endCol), endRow)
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write range %s: %w", rng, err)
	}
	if c.debug {
		log.Debug().Str("range", rng).Msg("[SHEETS] Wrote range")
	}
	return nil
}

// cellString renders one cell value as text.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// columnLetter converts a 1-based column index to A1 notation (1 -> A, 27 -> AA).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
