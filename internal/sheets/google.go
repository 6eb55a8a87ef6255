package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleService implements Service on the Google Sheets v4 API.
type GoogleService struct {
	api *gsheets.Service
}

// NewGoogleService authenticates with a service-account credential file.
// Extra options (endpoint, HTTP client) are appended after the defaults.
func NewGoogleService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*GoogleService, error) {
	base := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		base = append(base, option.WithCredentialsFile(credentialsFile))
	}

	api, err := gsheets.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleService{api: api}, nil
}

// Values returns the formatted values of the whole worksheet.
func (g *GoogleService) Values(ctx context.Context, loc Locator) ([][]string, error) {
	title, err := g.sheetTitle(ctx, loc)
	if err != nil {
		return nil, err
	}

	resp, err := g.api.Spreadsheets.Values.Get(loc.DocumentID, quoteTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values of %q: %w", title, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// Update writes values as raw strings into cellRange of the worksheet.
func (g *GoogleService) Update(ctx context.Context, loc Locator, cellRange string, values [][]string) error {
	title, err := g.sheetTitle(ctx, loc)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, len(values))
	for i, row := range values {
		rows[i] = make([]interface{}, len(row))
		for j, v := range row {
			rows[i][j] = v
		}
	}

	_, err = g.api.Spreadsheets.Values.Update(loc.DocumentID, quoteTitle(title)+"!"+cellRange, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", cellRange, err)
	}
	return nil
}

func (g *GoogleService) sheetTitle(ctx context.Context, loc Locator) (string, error) {
	ss, err := g.api.Spreadsheets.Get(loc.DocumentID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet %s: %w", loc.DocumentID, err)
	}
	if len(ss.Sheets) == 0 {
		return "", &EmptyDataError{Rows: 0}
	}

	if loc.SheetID == nil {
		for _, sh := range ss.Sheets {
			if sh.Properties != nil {
				return sh.Properties.Title, nil
			}
		}
		return "", &EmptyDataError{Rows: 0}
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.SheetId == *loc.SheetID {
			return sh.Properties.Title, nil
		}
	}
	return "", &SheetNotFoundError{DocumentID: loc.DocumentID, SheetID: *loc.SheetID}
}

// quoteTitle makes a sheet title safe for A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
