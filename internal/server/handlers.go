package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/sheet-copywriter/internal/export"
	"github.com/jonathan/sheet-copywriter/internal/pipeline"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

// InspectResponse represents the response for /api/v1/sheets/inspect
type InspectResponse struct {
	Headers        []string            `json:"headers"`
	Rows           []map[string]string `json:"rows"`
	MissingColumns []string            `json:"missing_columns"`
	Valid          bool                `json:"valid"`
}

// decode reads a JSON body into v and runs its validator.
func decode[T interface{ Validate() error }](r *http.Request, v T) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := v.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// handleInspect loads a sheet and reports its rows and missing columns.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req types.InspectRequest
	if err := decode(r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	inspection, err := s.pipeline.Inspect(r.Context(), req.SheetURL)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, InspectResponse{
		Headers:        inspection.Table.Headers,
		Rows:           inspection.Table.Records(),
		MissingColumns: inspection.Missing,
		Valid:          inspection.Valid(),
	})
}

func (s *Server) runOptions(req types.GenerateRequest) pipeline.RunOptions {
	provider := s.provider
	if req.Model != "" {
		provider = provider.WithModel(req.Model)
	}
	return pipeline.RunOptions{
		SheetURL:    req.SheetURL,
		Provider:    provider,
		UpdateSheet: req.UpdateSheet,
	}
}

// handleGenerate runs a whole batch and responds once every row is done.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decode(r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	run, err := s.pipeline.Run(r.Context(), s.runOptions(req))
	if err != nil && run != nil {
		status := HTTPStatus(err)
		s.logger.Error("batch output failed", zap.Int("status", status), zap.Error(err))
		s.jsonResponse(w, status, map[string]any{"error": err.Error(), "run": run})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleExport renders results as CSV or XLSX. The body is either
// {"results": [...]} JSON or a CSV produced by a previous export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	results, err := readResults(r)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	w.Header().Set("Content-Type", format.MIMEType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	if err := export.Write(w, format, results); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func readResults(r *http.Request) ([]types.GenerationResult, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == export.MIMECSV {
		results, err := export.ParseCSV(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, &ErrValidation{Field: "body", Message: err.Error()}
		}
		return results, nil
	}

	var req types.ExportRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return req.Results, nil
}
