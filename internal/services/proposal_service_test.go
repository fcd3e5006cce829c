package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
)

type serviceFixture struct {
	spaces      *mockSpaceRepo
	proposals   *mockProposalRepo
	attachments *mockAttachmentRepo
	parser      *mockPDFParser
	backend     *mockBackend
	service     ProposalService
	space       *models.Space
}

func newServiceFixture(backend *mockBackend) *serviceFixture {
	space := &models.Space{
		ID:           uuid.New(),
		Title:        "Office laptops",
		Requirements: json.RawMessage(`{"quantity": 50}`),
	}
	f := &serviceFixture{
		spaces:      &mockSpaceRepo{spaces: map[uuid.UUID]*models.Space{space.ID: space}},
		proposals:   newMockProposalRepo(),
		attachments: &mockAttachmentRepo{},
		parser:      &mockPDFParser{texts: map[string]string{}},
		backend:     backend,
		space:       space,
	}

	inv, _ := newTestInvoker(backend, nil)
	f.service = NewProposalService(
		f.spaces,
		f.proposals,
		f.attachments,
		f.parser,
		NewProposalAnalyzer(inv, nil, DefaultInvokeOptions()),
		NewProposalComparator(inv, DefaultInvokeOptions()),
	)
	return f
}

func (f *serviceFixture) addProposal(body string, format models.BodyFormat) *models.Proposal {
	p := &models.Proposal{
		ID:            uuid.New(),
		SpaceID:       f.space.ID,
		VendorName:    "Dana",
		VendorCompany: "Acme Supplies",
		Body:          body,
		BodyFormat:    format,
		Status:        models.StatusQueued,
	}
	f.proposals.proposals[p.ID] = p
	return p
}

func TestAnalyzeProposal_CombinesBodyAndAttachments(t *testing.T) {
	f := newServiceFixture(replying(validAnalysisReply))
	p := f.addProposal("<p>Please find our offer attached.</p><p>Delivery Date: 2025-03-15</p>", models.BodyFormatHTML)

	f.attachments.attachments = []models.Attachment{
		{ID: uuid.New(), ProposalID: p.ID, OriginalFileName: "quote.pdf", FilePath: "/uploads/quote.pdf"},
		{ID: uuid.New(), ProposalID: p.ID, OriginalFileName: "broken.pdf", FilePath: "/uploads/broken.pdf"},
	}
	f.parser.texts["/uploads/quote.pdf"] = "Total: $42,000\nISO 9001 certified"

	err := f.service.AnalyzeProposal(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, []models.ProposalStatus{models.StatusProcessing}, f.proposals.statuses)
	assert.Equal(t, models.StatusCompleted, p.Status)
	require.NotNil(t, p.Analysis)
	assert.Equal(t, 82.0, p.Analysis.OverallScore)
	assert.Equal(t, []string{"ISO9001"}, p.Analysis.ExtractedData.Compliance.Certifications)
	assert.Equal(t, "2025-03-15", p.Analysis.ExtractedData.Timeline.DeliveryDate)

	prompt := f.backend.requests[0].UserPrompt
	assert.Contains(t, prompt, "Please find our offer attached.")
	assert.NotContains(t, prompt, "<p>")
	assert.Contains(t, prompt, "--- Attachment: quote.pdf ---")
	assert.NotContains(t, prompt, "broken.pdf")
	assert.Contains(t, prompt, `"quantity": 50`)
}

func TestAnalyzeProposal_BackendDownStillCompletes(t *testing.T) {
	f := newServiceFixture(failing(errors.New("503")))
	p := f.addProposal("Total Project Cost: $45,000 USD", models.BodyFormatText)

	err := f.service.AnalyzeProposal(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, p.Status)
	require.NotNil(t, p.Analysis)
	assert.True(t, p.Analysis.Fallback)
	assert.Equal(t, 45000.0, p.Analysis.ExtractedData.Pricing.Total)
}

func TestAnalyzeProposal_MissingSpaceMarksFailed(t *testing.T) {
	f := newServiceFixture(replying(validAnalysisReply))
	p := f.addProposal("offer", models.BodyFormatText)
	p.SpaceID = uuid.New()

	err := f.service.AnalyzeProposal(context.Background(), p.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Contains(t, f.proposals.errors[p.ID], "space not found")
	assert.Equal(t, 0, f.backend.Calls())
}

func TestAnalyzeProposal_CancelledJobIsRequeued(t *testing.T) {
	f := newServiceFixture(failing(errors.New("503")))
	p := f.addProposal("Total Project Cost: $45,000 USD", models.BodyFormatText)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.service.AnalyzeProposal(ctx, p.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.StatusQueued, p.Status)
	assert.Nil(t, p.Analysis)
	assert.Equal(t, []models.ProposalStatus{models.StatusProcessing, models.StatusQueued}, f.proposals.statuses)
	assert.NotContains(t, f.proposals.errors, p.ID)
}

func TestAnalyzeProposal_SaveFailureMarksFailed(t *testing.T) {
	f := newServiceFixture(replying(validAnalysisReply))
	f.proposals.analysisErr = errors.New("connection reset")
	p := f.addProposal("offer", models.BodyFormatText)

	err := f.service.AnalyzeProposal(context.Background(), p.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, models.StatusFailed, p.Status)
	assert.Contains(t, f.proposals.errors[p.ID], "failed to save analysis")
}

func TestCompareSpace_StoresAlignedResults(t *testing.T) {
	f := newServiceFixture(failing(errors.New("offline")))
	first := f.addProposal("a", models.BodyFormatText)
	first.Analysis = &models.AnalysisResult{OverallScore: 70}
	second := f.addProposal("b", models.BodyFormatText)
	second.VendorCompany = ""
	second.VendorName = "Bo"
	second.Analysis = &models.AnalysisResult{OverallScore: 90}
	f.proposals.completed = []models.Proposal{*first, *second}

	entries, err := f.service.CompareSpace(context.Background(), f.space.ID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID.String(), entries[0].ProposalID)
	assert.Equal(t, "Acme Supplies", entries[0].VendorName)
	assert.Equal(t, 70.0, entries[0].OverallScore)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Bo", entries[1].VendorName)
	assert.Equal(t, 2, entries[1].Rank)

	require.Contains(t, f.proposals.comparisons, second.ID)
	assert.Equal(t, 2, f.proposals.comparisons[second.ID].Rank)
}

func TestCompareSpace_UnknownSpace(t *testing.T) {
	f := newServiceFixture(replying(`[]`))

	_, err := f.service.CompareSpace(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCompareSpace_NoCompletedProposals(t *testing.T) {
	f := newServiceFixture(replying(`[]`))

	entries, err := f.service.CompareSpace(context.Background(), f.space.ID)

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, f.backend.Calls())
}
