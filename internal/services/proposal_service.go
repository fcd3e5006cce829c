package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
)

const attachmentParseLimit = 4

type ProposalService interface {
	AnalyzeProposal(ctx context.Context, proposalID uuid.UUID) error
	CompareSpace(ctx context.Context, spaceID uuid.UUID) ([]models.ComparisonEntry, error)
}

type proposalService struct {
	spaceRepo      repositories.SpaceRepository
	proposalRepo   repositories.ProposalRepository
	attachmentRepo repositories.AttachmentRepository
	pdfParser      PDFParserService
	analyzer       *ProposalAnalyzer
	comparator     *ProposalComparator
}

func NewProposalService(
	spaceRepo repositories.SpaceRepository,
	proposalRepo repositories.ProposalRepository,
	attachmentRepo repositories.AttachmentRepository,
	pdfParser PDFParserService,
	analyzer *ProposalAnalyzer,
	comparator *ProposalComparator,
) ProposalService {
	return &proposalService{
		spaceRepo:      spaceRepo,
		proposalRepo:   proposalRepo,
		attachmentRepo: attachmentRepo,
		pdfParser:      pdfParser,
		analyzer:       analyzer,
		comparator:     comparator,
	}
}

// AnalyzeProposal runs the analysis job for one queued proposal and stores
// the result. The analyzer itself never fails, so only storage and lookup
// problems mark the proposal as failed. A job cancelled mid-analysis is put
// back in the queue.
func (s *proposalService) AnalyzeProposal(ctx context.Context, proposalID uuid.UUID) error {
	if err := s.proposalRepo.UpdateStatus(proposalID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for proposal %s\n", proposalID)

	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		s.markFailed(proposalID, err)
		return fmt.Errorf("failed to get proposal: %w", err)
	}

	space, err := s.spaceRepo.FindByID(proposal.SpaceID)
	if err != nil {
		s.markFailed(proposalID, fmt.Errorf("space not found: %w", err))
		return fmt.Errorf("failed to get space: %w", err)
	}

	text, err := s.proposalText(ctx, proposal)
	if err != nil {
		s.markFailed(proposalID, err)
		return fmt.Errorf("failed to read proposal text: %w", err)
	}

	log.Printf("🤖 Analyzing proposal from %s...\n", proposal.Vendor().DisplayName())
	result := s.analyzer.Analyze(ctx, models.AnalysisRequest{
		ProposalText:      text,
		SpaceRequirements: space.Requirements,
		VendorInfo:        proposal.Vendor(),
	})

	// A cancelled job yields a fallback result; requeue instead of storing it.
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Printf("⏸️  Analysis for proposal %s interrupted, requeueing\n", proposalID)
		if err := s.proposalRepo.UpdateStatus(proposalID, models.StatusQueued); err != nil {
			s.markFailed(proposalID, ctxErr)
		}
		return fmt.Errorf("analysis interrupted: %w", ctxErr)
	}

	log.Println("💾 Saving analysis results...")
	if err := s.proposalRepo.UpdateAnalysis(proposalID, result); err != nil {
		s.markFailed(proposalID, fmt.Errorf("failed to save analysis: %w", err))
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	log.Printf("✅ Analysis completed for proposal %s\n", proposalID)
	return nil
}

// proposalText joins the plain-text body with the text of every readable
// PDF attachment, in attachment order.
func (s *proposalService) proposalText(ctx context.Context, proposal *models.Proposal) (string, error) {
	body := proposal.Body
	if proposal.BodyFormat == models.BodyFormatHTML && strings.TrimSpace(body) != "" {
		text, err := HTMLToText(body)
		if err != nil {
			log.Printf("⚠️  Failed to convert HTML body, using raw body: %v\n", err)
		} else {
			body = text
		}
	}

	attachments, err := s.attachmentRepo.FindByProposalID(proposal.ID)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(attachments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(attachmentParseLimit)

	for i, attachment := range attachments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Printf("📄 Parsing attachment %s...\n", attachment.OriginalFileName)
			content, err := s.pdfParser.ExtractText(attachment.FilePath)
			if err != nil {
				log.Printf("⚠️  Skipping attachment %s: %v\n", attachment.OriginalFileName, err)
				return nil
			}
			texts[i] = fmt.Sprintf("--- Attachment: %s ---\n%s", attachment.OriginalFileName, content.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	parts := []string{}
	if b := strings.TrimSpace(body); b != "" {
		parts = append(parts, b)
	}
	for _, t := range texts {
		if t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// CompareSpace ranks every completed proposal of a space and stores each
// proposal's comparison result.
func (s *proposalService) CompareSpace(ctx context.Context, spaceID uuid.UUID) ([]models.ComparisonEntry, error) {
	space, err := s.spaceRepo.FindByID(spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	proposals, err := s.proposalRepo.FindCompletedBySpace(spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposals: %w", err)
	}

	inputs := make([]models.ComparisonInput, len(proposals))
	for i, p := range proposals {
		inputs[i] = models.ComparisonInput{
			ProposalID: p.ID.String(),
			VendorName: p.Vendor().DisplayName(),
			Analysis:   p.Analysis,
		}
	}

	log.Printf("🤖 Comparing %d proposals for space %s...\n", len(inputs), spaceID)
	results := s.comparator.Compare(ctx, inputs, space.Requirements)

	entries := make([]models.ComparisonEntry, len(results))
	for i, result := range results {
		if err := s.proposalRepo.UpdateComparison(proposals[i].ID, &result); err != nil {
			return nil, fmt.Errorf("failed to save comparison: %w", err)
		}

		entry := models.ComparisonEntry{
			ProposalID:       inputs[i].ProposalID,
			VendorName:       inputs[i].VendorName,
			ComparisonResult: result,
		}
		if a := proposals[i].Analysis; a != nil {
			entry.OverallScore = a.OverallScore
		}
		entries[i] = entry
	}

	return entries, nil
}

func (s *proposalService) markFailed(id uuid.UUID, cause error) {
	if err := s.proposalRepo.UpdateError(id, cause.Error()); err != nil {
		log.Printf("⚠️  Failed to record error for proposal %s: %v\n", id, err)
	}
}
