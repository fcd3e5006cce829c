package handlers

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

type mockSpaceRepo struct {
	spaces map[uuid.UUID]*models.Space
}

func newMockSpaceRepo(spaces ...*models.Space) *mockSpaceRepo {
	m := &mockSpaceRepo{spaces: make(map[uuid.UUID]*models.Space)}
	for _, s := range spaces {
		m.spaces[s.ID] = s
	}
	return m
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
	proposals map[uuid.UUID]*models.Proposal
	errors    map[uuid.UUID]string
}

func newMockProposalRepo(proposals ...*models.Proposal) *mockProposalRepo {
	m := &mockProposalRepo{
		proposals: make(map[uuid.UUID]*models.Proposal),
		errors:    make(map[uuid.UUID]string),
	}
	for _, p := range proposals {
		m.proposals[p.ID] = p
	}
	return m
}

func (m *mockProposalRepo) Create(p *models.Proposal) error {
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalRepo) FindByID(id uuid.UUID) (*models.Proposal, error) {
	if p, ok := m.proposals[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockProposalRepo) FindCompletedBySpace(uuid.UUID) ([]models.Proposal, error) {
	return nil, nil
}

func (m *mockProposalRepo) UpdateStatus(uuid.UUID, models.ProposalStatus) error { return nil }

func (m *mockProposalRepo) UpdateAnalysis(uuid.UUID, *models.AnalysisResult) error { return nil }

func (m *mockProposalRepo) UpdateComparison(uuid.UUID, *models.ComparisonResult) error { return nil }

func (m *mockProposalRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	m.errors[id] = errorMsg
	return nil
}

func (m *mockProposalRepo) FindPendingJobs(int) ([]models.Proposal, error) { return nil, nil }

type mockAttachmentRepo struct {
	created []models.Attachment
}

func (m *mockAttachmentRepo) Create(a *models.Attachment) error {
	m.created = append(m.created, *a)
	return nil
}

func (m *mockAttachmentRepo) FindByProposalID(uuid.UUID) ([]models.Attachment, error) {
	return m.created, nil
}

type mockStorage struct {
	saveFn  func(file *multipart.FileHeader, proposalID uuid.UUID) (string, string, error)
	deleted []string
}

func (m *mockStorage) SaveAttachment(file *multipart.FileHeader, proposalID uuid.UUID) (string, string, error) {
	return m.saveFn(file, proposalID)
}

func (m *mockStorage) GetFilePath(filename string) string { return "/uploads/" + filename }

func (m *mockStorage) DeleteFile(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

func (m *mockStorage) EnsureUploadDir() error { return nil }

type mockWorker struct {
	enqueued []uuid.UUID
}

func (m *mockWorker) Start(context.Context)   {}
func (m *mockWorker) Stop()                   {}
func (m *mockWorker) EnqueueJob(id uuid.UUID) { m.enqueued = append(m.enqueued, id) }

type mockProposalService struct {
	compareFn func(ctx context.Context, spaceID uuid.UUID) ([]models.ComparisonEntry, error)
}

func (m *mockProposalService) AnalyzeProposal(context.Context, uuid.UUID) error { return nil }

func (m *mockProposalService) CompareSpace(ctx context.Context, spaceID uuid.UUID) ([]models.ComparisonEntry, error) {
	return m.compareFn(ctx, spaceID)
}

var (
	_ services.StorageService  = (*mockStorage)(nil)
	_ services.Worker          = (*mockWorker)(nil)
	_ services.ProposalService = (*mockProposalService)(nil)
)
