package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
)

type mockBackend struct {
	mu         sync.Mutex
	calls      int
	requests   []ChatRequest
	completeFn func(ctx context.Context, req ChatRequest) (string, error)
}

func (m *mockBackend) Complete(ctx context.Context, req ChatRequest) (string, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.completeFn(ctx, req)
}

func (m *mockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func replying(text string) *mockBackend {
	return &mockBackend{completeFn: func(context.Context, ChatRequest) (string, error) {
		return text, nil
	}}
}

func failing(err error) *mockBackend {
	return &mockBackend{completeFn: func(context.Context, ChatRequest) (string, error) {
		return "", err
	}}
}

// newTestInvoker records backoff waits instead of sleeping.
func newTestInvoker(backend ChatBackend, cache ResponseCache) (*LLMInvoker, *[]time.Duration) {
	inv := NewLLMInvoker(backend, cache, time.Second)
	var delays []time.Duration
	inv.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return inv, &delays
}

type mockRetriever struct {
	context string
	err     error
}

func (m *mockRetriever) Retrieve(context.Context, models.AnalysisRequest) (string, error) {
	return m.context, m.err
}

type mockSpaceRepo struct {
	spaces map[uuid.UUID]*models.Space
}

func (m *mockSpaceRepo) Create(space *models.Space) error {
	m.spaces[space.ID] = space
	return nil
}

func (m *mockSpaceRepo) FindByID(id uuid.UUID) (*models.Space, error) {
	if s, ok := m.spaces[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

type mockProposalRepo struct {
	mu          sync.Mutex
	proposals   map[uuid.UUID]*models.Proposal
	completed   []models.Proposal
	statuses    []models.ProposalStatus
	errors      map[uuid.UUID]string
	comparisons map[uuid.UUID]*models.ComparisonResult
	pending     []models.Proposal
	analysisErr error
}

func newMockProposalRepo() *mockProposalRepo {
	return &mockProposalRepo{
		proposals:   make(map[uuid.UUID]*models.Proposal),
		errors:      make(map[uuid.UUID]string),
		comparisons: make(map[uuid.UUID]*models.ComparisonResult),
	}
}

func (m *mockProposalRepo) Create(p *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalRepo) FindByID(id uuid.UUID) (*models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.proposals[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockProposalRepo) FindCompletedBySpace(uuid.UUID) ([]models.Proposal, error) {
	return m.completed, nil
}

func (m *mockProposalRepo) UpdateStatus(id uuid.UUID, status models.ProposalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
	if p, ok := m.proposals[id]; ok {
		p.Status = status
	}
	return nil
}

func (m *mockProposalRepo) UpdateAnalysis(id uuid.UUID, analysis *models.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.analysisErr != nil {
		return m.analysisErr
	}
	p, ok := m.proposals[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Status = models.StatusCompleted
	p.Analysis = analysis
	return nil
}

func (m *mockProposalRepo) UpdateComparison(id uuid.UUID, comparison *models.ComparisonResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons[id] = comparison
	return nil
}

func (m *mockProposalRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[id] = errorMsg
	if p, ok := m.proposals[id]; ok {
		p.Status = models.StatusFailed
	}
	return nil
}

func (m *mockProposalRepo) FindPendingJobs(int) ([]models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := m.pending
	m.pending = nil
	return pending, nil
}

type mockAttachmentRepo struct {
	attachments []models.Attachment
}

func (m *mockAttachmentRepo) Create(a *models.Attachment) error {
	m.attachments = append(m.attachments, *a)
	return nil
}

func (m *mockAttachmentRepo) FindByProposalID(uuid.UUID) ([]models.Attachment, error) {
	return m.attachments, nil
}

type mockPDFParser struct {
	texts map[string]string
}

func (m *mockPDFParser) ExtractText(path string) (*PDFContent, error) {
	text, ok := m.texts[path]
	if !ok {
		return nil, fmt.Errorf("no text content found in PDF")
	}
	return &PDFContent{Text: text, PageCount: 1, FilePath: path}, nil
}
