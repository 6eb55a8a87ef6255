// Package pipeline provides the high-level orchestration for one sheet:
// read and validate it, generate copy for every row, then write the results
// back to the sheet and/or to a file.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/sheet-copywriter/internal/export"
	"github.com/jonathan/sheet-copywriter/internal/generation"
	"github.com/jonathan/sheet-copywriter/internal/llm"
	"github.com/jonathan/sheet-copywriter/internal/sheets"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Step names reported in ProgressEvent.Step.
const (
	StepInspect  = "inspect"
	StepValidate = "validate"
	StepGenerate = "generate"
	StepWrite    = "write_sheet"
	StepExport   = "export"
)

// Progress categories.
const (
	CategoryStarted   = "started"
	CategoryCompleted = "completed"
	CategoryWarning   = "warning"
	CategoryFailed    = "failed"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	BatchID  string `json:"batch_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	SheetURL string
	Provider llm.ProviderConfig
	// UpdateSheet writes generated columns back into E..I
	UpdateSheet bool
	// OutputPath, when set, exports results to a .csv or .xlsx file
	OutputPath string
	OnProgress ProgressCallback
}

// Inspection is a loaded table plus its required-column report.
type Inspection struct {
	Table   *sheets.Table `json:"table"`
	Missing []string      `json:"missing_columns"`
}

// Valid reports whether every required column is present.
func (i *Inspection) Valid() bool {
	return len(i.Missing) == 0
}

// RunResult is the outcome of a Run. It is also returned alongside a sheet
// write or export error.
type RunResult struct {
	BatchID      string                   `json:"batch_id"`
	Results      []types.GenerationResult `json:"results"`
	Failed       int                      `json:"failed"`
	SheetUpdated bool                     `json:"sheet_updated"`
	OutputPath   string                   `json:"output_path,omitempty"`
	Elapsed      time.Duration            `json:"elapsed"`
}

// Pipeline wires the sheet reader and writer to a Generator.
type Pipeline struct {
	reader    *sheets.Reader
	writer    *sheets.Writer
	generator *generation.Generator
	logger    *zap.Logger
}

// New creates a Pipeline. A nil logger discards output.
func New(svc sheets.Service, generator *generation.Generator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		reader:    sheets.NewReader(svc, logger),
		writer:    sheets.NewWriter(svc, logger),
		generator: generator,
		logger:    logger,
	}
}

// Inspect loads the sheet and reports missing required columns without
// treating them as an error.
func (p *Pipeline) Inspect(ctx context.Context, sheetURL string) (*Inspection, error) {
	table, err := p.reader.ReadTable(ctx, sheetURL)
	if err != nil {
		return nil, err
	}
	return &Inspection{Table: table, Missing: sheets.MissingColumns(table)}, nil
}

// Run reads the sheet, refuses to continue with a *sheets.MissingColumnsError
// when required columns are absent, generates copy for every row and then
// performs the requested outputs. Row-level generation failures are not
// errors; they are counted in RunResult.Failed.
//
// An unsupported OutputPath extension is rejected before anything is read or
// generated. When the sheet write or the export fails, Run returns the
// generated RunResult together with the error.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.OutputPath != "" {
		if _, err := export.FormatForPath(opts.OutputPath); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	batchID := uuid.New().String()
	log := p.logger.With(zap.String("batch_id", batchID))
	emit := func(step, category, message string, content any) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Category: category, Message: message, BatchID: batchID, Content: content})
		}
	}

	emit(StepInspect, CategoryStarted, "Loading sheet", nil)
	inspection, err := p.Inspect(ctx, opts.SheetURL)
	if err != nil {
		emit(StepInspect, CategoryFailed, err.Error(), nil)
		return nil, fmt.Errorf("failed to load sheet: %w", err)
	}
	table := inspection.Table
	emit(StepInspect, CategoryCompleted, fmt.Sprintf("Loaded %d row(s)", table.Len()), inspection)

	if !inspection.Valid() {
		err := &sheets.MissingColumnsError{Missing: inspection.Missing}
		emit(StepValidate, CategoryFailed, err.Error(), inspection.Missing)
		return nil, err
	}
	products, err := table.Products()
	if err != nil {
		return nil, err
	}
	emit(StepValidate, CategoryCompleted, "All required columns present", nil)

	emit(StepGenerate, CategoryStarted, fmt.Sprintf("Generating copy for %d product(s) with %s", len(products), opts.Provider), nil)
	results, err := p.generator.Generate(ctx, opts.Provider, products)
	if err != nil {
		emit(StepGenerate, CategoryFailed, err.Error(), nil)
		return nil, err
	}
	failed := countFailed(results)
	if failed > 0 {
		emit(StepGenerate, CategoryWarning, fmt.Sprintf("%d of %d row(s) fell back to empty copy", failed, len(results)), nil)
	}
	emit(StepGenerate, CategoryCompleted, fmt.Sprintf("Generated %d result(s)", len(results)), results)

	run := &RunResult{BatchID: batchID, Results: results, Failed: failed}

	if opts.UpdateSheet {
		emit(StepWrite, CategoryStarted, "Updating sheet", nil)
		if err := p.writer.WriteResults(ctx, opts.SheetURL, table.Headers, results); err != nil {
			emit(StepWrite, CategoryFailed, err.Error(), nil)
			run.Elapsed = time.Since(start)
			return run, err
		}
		run.SheetUpdated = true
		emit(StepWrite, CategoryCompleted, "Sheet updated successfully", nil)
	}

	if opts.OutputPath != "" {
		emit(StepExport, CategoryStarted, "Exporting to "+opts.OutputPath, nil)
		if err := ExportFile(opts.OutputPath, results); err != nil {
			emit(StepExport, CategoryFailed, err.Error(), nil)
			run.Elapsed = time.Since(start)
			return run, err
		}
		run.OutputPath = opts.OutputPath
		emit(StepExport, CategoryCompleted, "Exported "+opts.OutputPath, nil)
	}

	run.Elapsed = time.Since(start)
	log.Info("pipeline finished",
		zap.Int("rows", len(results)),
		zap.Int("failed", failed),
		zap.Bool("sheet_updated", run.SheetUpdated),
		zap.Duration("elapsed", run.Elapsed),
	)
	return run, nil
}

// ExportFile writes results to path, choosing CSV or XLSX by extension.
func ExportFile(path string, results []types.GenerationResult) (err error) {
	format, err := export.FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return export.Write(f, format, results)
}

func countFailed(results []types.GenerationResult) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
