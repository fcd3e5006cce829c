package models

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	StatusQueued     ProposalStatus = "queued"
	StatusProcessing ProposalStatus = "processing"
	StatusCompleted  ProposalStatus = "completed"
	StatusFailed     ProposalStatus = "failed"
)

type BodyFormat string

const (
	BodyFormatText BodyFormat = "text"
	BodyFormatHTML BodyFormat = "html"
)

type Proposal struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SpaceID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"space_id"`
	VendorName    string            `gorm:"type:text" json:"vendor_name"`
	VendorEmail   string            `gorm:"type:text" json:"vendor_email"`
	VendorCompany string            `gorm:"type:text" json:"vendor_company"`
	Body          string            `gorm:"type:text" json:"body"`
	BodyFormat    BodyFormat        `gorm:"type:text;not null;default:'text'" json:"body_format"`
	Status        ProposalStatus    `gorm:"not null;default:'queued'" json:"status"`
	Analysis      *AnalysisResult   `gorm:"type:jsonb;serializer:json" json:"analysis,omitempty"`
	Comparison    *ComparisonResult `gorm:"type:jsonb;serializer:json" json:"comparison,omitempty"`
	ErrorMessage  *string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Space       Space        `gorm:"foreignKey:SpaceID" json:"-"`
	Attachments []Attachment `gorm:"foreignKey:ProposalID" json:"attachments,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// Vendor returns the vendor block used in analysis prompts.
func (p *Proposal) Vendor() VendorInfo {
	return VendorInfo{
		Name:    p.VendorName,
		Email:   p.VendorEmail,
		Company: p.VendorCompany,
	}
}

type Attachment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProposalID       uuid.UUID `gorm:"type:uuid;not null;index" json:"proposal_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (a *Attachment) TableName() string {
	return "attachments"
}
