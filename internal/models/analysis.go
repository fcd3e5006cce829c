package models

import "encoding/json"

// AnalysisRequest is the input of a single proposal analysis.
type AnalysisRequest struct {
	ProposalText      string          `json:"proposal_text"`
	SpaceRequirements json.RawMessage `json:"space_requirements"`
	VendorInfo        VendorInfo      `json:"vendor_info"`
}

type VendorInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// DisplayName prefers the company, then the contact name.
func (v VendorInfo) DisplayName() string {
	if v.Company != "" {
		return v.Company
	}
	if v.Name != "" {
		return v.Name
	}
	return "Vendor"
}

type Pricing struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type Timeline struct {
	DeliveryDate string `json:"deliveryDate,omitempty"`
	LeadTime     string `json:"leadTime,omitempty"`
}

type Terms struct {
	PaymentTerms string `json:"paymentTerms,omitempty"`
	Warranty     string `json:"warranty,omitempty"`
}

type Compliance struct {
	Certifications []string `json:"certifications"`
}

type Technical struct {
	Technologies []string `json:"technologies"`
}

// ExtractedFields holds what could be pulled out of a proposal. A nil
// sub-object means the pattern was not found.
type ExtractedFields struct {
	Pricing    *Pricing    `json:"pricing,omitempty"`
	Timeline   *Timeline   `json:"timeline,omitempty"`
	Terms      *Terms      `json:"terms,omitempty"`
	Compliance *Compliance `json:"compliance,omitempty"`
	Technical  *Technical  `json:"technical,omitempty"`
}

type CriterionAnalysis struct {
	CriteriaName string  `json:"criteriaName"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
	Evidence     string  `json:"evidence"`
}

type AnalysisResult struct {
	OverallScore     float64             `json:"overallScore"`
	PersonalFeedback string              `json:"personalFeedback"`
	CriteriaAnalysis []CriterionAnalysis `json:"criteriaAnalysis"`
	AISummary        string              `json:"aiSummary"`
	Strengths        []string            `json:"strengths"`
	Weaknesses       []string            `json:"weaknesses"`
	ExtractedData    ExtractedFields     `json:"extractedData"`
	Fallback         bool                `json:"fallback,omitempty"`
}

// ComparisonInput is one analyzed proposal handed to the comparator.
type ComparisonInput struct {
	ProposalID string          `json:"proposal_id"`
	VendorName string          `json:"vendor_name"`
	Analysis   *AnalysisResult `json:"analysis"`
}

type ComparisonResult struct {
	Rank            int      `json:"rank"`
	IsRecommended   bool     `json:"isRecommended"`
	Reasoning       string   `json:"reasoning"`
	ComparisonNotes string   `json:"comparisonNotes"`
	RiskFactors     []string `json:"riskFactors"`
}
