package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type AttachmentResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type CreateSpaceRequest struct {
	Title        string          `json:"title" validate:"required,min=3"`
	Description  string          `json:"description"`
	Requirements json.RawMessage `json:"requirements" validate:"required"`
}

// Validate checks the request against its validate tags.
func (r *CreateSpaceRequest) Validate() error {
	return validate.Struct(r)
}

type SubmitProposalRequest struct {
	VendorName    string `form:"vendor_name" validate:"required"`
	VendorEmail   string `form:"vendor_email" validate:"omitempty,email"`
	VendorCompany string `form:"vendor_company"`
	Body          string `form:"body" validate:"required_without=HasAttachments"`
	BodyFormat    string `form:"body_format" validate:"omitempty,oneof=text html"`

	HasAttachments bool `form:"-"`
}

// Validate checks the request against its validate tags.
func (r *SubmitProposalRequest) Validate() error {
	return validate.Struct(r)
}

type SubmitProposalResponse struct {
	ID          string               `json:"id"`
	Status      string               `json:"status"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
}

type ProposalResultResponse struct {
	ID           string            `json:"id"`
	SpaceID      string            `json:"space_id"`
	VendorName   string            `json:"vendor_name"`
	Status       string            `json:"status"`
	Analysis     *AnalysisResult   `json:"analysis,omitempty"`
	Comparison   *ComparisonResult `json:"comparison,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

type ComparisonEntry struct {
	ProposalID   string  `json:"proposal_id"`
	VendorName   string  `json:"vendor_name"`
	OverallScore float64 `json:"overall_score"`
	ComparisonResult
}

type CompareResponse struct {
	SpaceID     string            `json:"space_id"`
	Comparisons []ComparisonEntry `json:"comparisons"`
}
