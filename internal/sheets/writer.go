package sheets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Output columns E..I hold title, description, hashtags, post and cta.
// Columns A..D are assumed to stay where the reader found them.
const (
	OutputFirstColumn = "E"
	OutputLastColumn  = "I"
)

// Writer writes generated copy back into a worksheet.
type Writer struct {
	svc    Service
	logger *zap.Logger
}

// NewWriter creates a Writer. A nil logger discards output.
func NewWriter(svc Service, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{svc: svc, logger: logger}
}

// MissingOutputHeaders returns the generated columns absent from headers,
// compared case-insensitively.
func MissingOutputHeaders(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	missing := []string{}
	for _, col := range types.GeneratedColumns() {
		if _, ok := present[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// OutputRows flattens results into E..I cell rows in source row order.
func OutputRows(results []types.GenerationResult) [][]string {
	ordered := make([]types.GenerationResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Row < ordered[j].Row })

	rows := make([][]string, 0, len(ordered))
	for _, r := range ordered {
		rows = append(rows, r.GeneratedValues())
	}
	return rows
}

// WriteResults backfills the output header row when any output column is
// missing, then writes all rows in one call. The two calls are not atomic.
func (w *Writer) WriteResults(ctx context.Context, rawURL string, headers []string, results []types.GenerationResult) error {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return err
	}

	if missing := MissingOutputHeaders(headers); len(missing) > 0 {
		headerRange := fmt.Sprintf("%s1:%s1", OutputFirstColumn, OutputLastColumn)
		if err := w.svc.Update(ctx, loc, headerRange, [][]string{types.GeneratedColumns()}); err != nil {
			return &SheetWriteError{Stage: "headers", Range: headerRange, Cause: err}
		}
		w.logger.Info("output headers written", zap.Strings("missing", missing))
	}

	if len(results) == 0 {
		return nil
	}

	rows := OutputRows(results)
	dataRange := fmt.Sprintf("%s2:%s%d", OutputFirstColumn, OutputLastColumn, len(rows)+1)
	if err := w.svc.Update(ctx, loc, dataRange, rows); err != nil {
		return &SheetWriteError{Stage: "values", Range: dataRange, Cause: err}
	}

	w.logger.Info("results written",
		zap.String("document_id", loc.DocumentID),
		zap.String("range", dataRange),
		zap.Int("rows", len(rows)),
	)
	return nil
}
