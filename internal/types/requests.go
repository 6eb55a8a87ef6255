package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// InspectRequest asks the API to load and validate a sheet.
type InspectRequest struct {
	SheetURL string `json:"sheet_url" validate:"required,url"`
}

// GenerateRequest asks the API to generate copy for every row of a sheet.
type GenerateRequest struct {
	SheetURL    string `json:"sheet_url" validate:"required,url"`
	UpdateSheet bool   `json:"update_sheet,omitempty"`
	// Model overrides the server's configured model for this batch
	Model string `json:"model,omitempty" validate:"omitempty,max=100"`
}

// ExportRequest carries results to render as a file.
type ExportRequest struct {
	Results []GenerationResult `json:"results" validate:"required,min=1,dive"`
}

// Validate validates the InspectRequest using the validator.
func (r *InspectRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	return validate.Struct(r)
}
