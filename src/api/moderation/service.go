package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/defi-mexico/platform-backend/src/api/notify"
	"github.com/defi-mexico/platform-backend/src/api/types"
)

// Service runs the proposal lifecycle: create (pending), list, and the
// single reviewer transition to approved or rejected. Approval transforms
// the payload and publishes the result in the same transaction as the
// status flip.
type Service struct {
	store      Store
	dispatcher notify.Dispatcher
}

func NewService(store Store, dispatcher notify.Dispatcher) *Service {
	return &Service{store: store, dispatcher: dispatcher}
}

// UserSummary is the denormalized identity attached to proposal detail.
type UserSummary struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type ProposalDetail struct {
	types.Proposal
	Submitter *UserSummary `json:"submitter,omitempty"`
	Reviewer  *UserSummary `json:"reviewer,omitempty"`
}

func (s *Service) List(ctx context.Context, f ProposalFilter) ([]types.Proposal, error) {
	return s.store.Proposals(ctx, f)
}

// Create stores a new pending proposal. Status is forced server-side;
// whatever the submitter put in the payload never overrides it.
func (s *Service) Create(ctx context.Context, contentType string, data map[string]interface{}, userID uint64) (*types.Proposal, error) {
	if !types.ValidContentType(contentType) {
		return nil, &InvalidPayloadError{ContentType: contentType, Field: "content_type"}
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, err
	}

	p := &types.Proposal{
		ContentType: contentType,
		ContentData: types.JSONMap(data),
		Status:      types.ProposalPending,
		ProposedBy:  user.ID,
	}
	if err := s.store.CreateProposal(ctx, p); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	s.notifyBestEffort(ctx, notify.Event{
		Type:           notify.EventSubmitted,
		RecipientEmail: user.Email,
		ContentType:    contentType,
		ContentTitle:   contentTitle(contentType, data),
		ProposalID:     p.ID,
	})
	return p, nil
}

// Get returns the proposal with submitter and reviewer summaries joined in.
func (s *Service) Get(ctx context.Context, id uint64) (*ProposalDetail, error) {
	p, err := s.store.ProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ProposalDetail{Proposal: *p}
	if u, err := s.store.UserByID(ctx, p.ProposedBy); err == nil {
		detail.Submitter = &UserSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
	}
	if p.ReviewedBy != nil {
		if u, err := s.store.UserByID(ctx, *p.ReviewedBy); err == nil {
			detail.Reviewer = &UserSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
		}
	}
	return detail, nil
}

// Delete hard-deletes the proposal. Published records created from it are
// independent and stay untouched.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	return s.store.DeleteProposal(ctx, id)
}

// Approve flips the proposal to approved and inserts the transformed
// record into its target table. The flip is conditional on the row still
// being pending, and both writes share one transaction, so a concurrent
// reviewer loses cleanly and a failed insert rolls the flip back.
func (s *Service) Approve(ctx context.Context, id, reviewerID uint64, notes string) (*types.Proposal, error) {
	p, err := s.store.ProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != types.ProposalPending {
		return nil, ErrInvalidState
	}

	// Transform before writing anything: a payload that cannot be
	// published must not leave the proposal approved.
	rec, err := Transform(p.ContentType, p.ContentData, p.ID, p.ProposedBy)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.store.InTx(ctx, func(tx Store) error {
		n, err := tx.MarkReviewed(ctx, id, types.ProposalApproved, reviewerID, now, notes)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInvalidState
		}
		if err := tx.InsertPublished(ctx, rec); err != nil {
			if errors.Is(err, ErrDuplicateSlug) {
				// Collision policy: retry once with the proposal id
				// appended; never overwrite the existing record.
				rec.SetSlug(rec.GetSlug() + "-" + strconv.FormatUint(p.ID, 10))
				return tx.InsertPublished(ctx, rec)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.Status = types.ProposalApproved
	p.ReviewedBy = &reviewerID
	p.ReviewedAt = &now
	p.ReviewNotes = notes

	if u, uerr := s.store.UserByID(ctx, p.ProposedBy); uerr == nil {
		s.notifyBestEffort(ctx, notify.Event{
			Type:           notify.EventApproved,
			RecipientEmail: u.Email,
			ContentType:    p.ContentType,
			ContentTitle:   contentTitle(p.ContentType, p.ContentData),
			ReviewNotes:    notes,
			ProposalID:     p.ID,
		})
	}
	return p, nil
}

// Reject flips the proposal to rejected with the reviewer's notes. No
// transformation and no published record, ever.
func (s *Service) Reject(ctx context.Context, id, reviewerID uint64, notes string) (*types.Proposal, error) {
	p, err := s.store.ProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != types.ProposalPending {
		return nil, ErrInvalidState
	}

	now := time.Now()
	n, err := s.store.MarkReviewed(ctx, id, types.ProposalRejected, reviewerID, now, notes)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrInvalidState
	}

	p.Status = types.ProposalRejected
	p.ReviewedBy = &reviewerID
	p.ReviewedAt = &now
	p.ReviewNotes = notes

	if u, uerr := s.store.UserByID(ctx, p.ProposedBy); uerr == nil {
		s.notifyBestEffort(ctx, notify.Event{
			Type:           notify.EventRejected,
			RecipientEmail: u.Email,
			ContentType:    p.ContentType,
			ContentTitle:   contentTitle(p.ContentType, p.ContentData),
			ReviewNotes:    notes,
			ProposalID:     p.ID,
		})
	}
	return p, nil
}

// Notification failures never abort an already-committed transition.
func (s *Service) notifyBestEffort(ctx context.Context, ev notify.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Notify(ctx, ev); err != nil {
		log.Printf("notify %s for proposal %d failed: %v", ev.Type, ev.ProposalID, err)
	}
}

func contentTitle(contentType string, data map[string]interface{}) string {
	switch contentType {
	case types.TypeStartup, types.TypeCommunity, types.TypeReferent:
		return str(data, "name")
	default:
		return str(data, "title")
	}
}
