package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

type recordingProposalService struct {
	analyzed chan uuid.UUID
}

func (r *recordingProposalService) AnalyzeProposal(_ context.Context, id uuid.UUID) error {
	r.analyzed <- id
	return nil
}

func (r *recordingProposalService) CompareSpace(context.Context, uuid.UUID) ([]models.ComparisonEntry, error) {
	return nil, nil
}

func TestWorker_ProcessesEnqueuedJobs(t *testing.T) {
	svc := &recordingProposalService{analyzed: make(chan uuid.UUID, 1)}
	w := NewWorker(newMockProposalRepo(), svc, 2, time.Hour)

	w.Start(context.Background())
	defer w.Stop()

	id := uuid.New()
	w.EnqueueJob(id)

	select {
	case got := <-svc.analyzed:
		assert.Equal(t, id, got)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestWorker_PollsQueuedProposals(t *testing.T) {
	repo := newMockProposalRepo()
	pending := models.Proposal{ID: uuid.New(), Status: models.StatusQueued}
	repo.pending = []models.Proposal{pending}

	svc := &recordingProposalService{analyzed: make(chan uuid.UUID, 1)}
	w := NewWorker(repo, svc, 1, 10*time.Millisecond)

	w.Start(context.Background())
	defer w.Stop()

	select {
	case got := <-svc.analyzed:
		assert.Equal(t, pending.ID, got)
	case <-time.After(2 * time.Second):
		t.Fatal("queued proposal was not picked up")
	}
}

func TestWorker_EnqueueAfterStopDoesNotBlock(t *testing.T) {
	svc := &recordingProposalService{analyzed: make(chan uuid.UUID, 1)}
	w := NewWorker(newMockProposalRepo(), svc, 1, time.Hour)
	w.Start(context.Background())
	w.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			w.EnqueueJob(uuid.New())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "EnqueueJob blocked after Stop")
	}
}
