package sheets

import (
	"context"

	"go.uber.org/zap"
)

// Service is the remote spreadsheet API used by Reader and Writer.
type Service interface {
	// Values returns every cell of the worksheet as a grid of strings
	Values(ctx context.Context, loc Locator) ([][]string, error)
	// Update overwrites an A1 range (without sheet name) of the worksheet
	Update(ctx context.Context, loc Locator, cellRange string, values [][]string) error
}

// Reader loads product tables from a Service.
type Reader struct {
	svc    Service
	logger *zap.Logger
}

// NewReader creates a Reader. A nil logger discards output.
func NewReader(svc Service, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{svc: svc, logger: logger}
}

// ReadTable fetches the worksheet addressed by rawURL and converts it to a Table.
func (r *Reader) ReadTable(ctx context.Context, rawURL string) (*Table, error) {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	values, err := r.svc.Values(ctx, loc)
	if err != nil {
		return nil, &SheetFetchError{DocumentID: loc.DocumentID, Cause: err}
	}

	table, err := NewTable(values)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("sheet loaded",
		zap.String("document_id", loc.DocumentID),
		zap.Int("rows", table.Len()),
		zap.Strings("headers", table.Headers),
	)
	return table, nil
}
