package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/defi-mexico/platform-backend/src/api/types"
	"gorm.io/gorm"
)

// ProposalFilter fields are ANDed; zero values mean "any".
type ProposalFilter struct {
	Status      string
	ContentType string
	ProposedBy  uint64
}

// Store is the persistence contract the moderation pipeline runs against.
// The gorm implementation below is the real one; tests use an in-memory
// fake.
type Store interface {
	CreateProposal(ctx context.Context, p *types.Proposal) error
	ProposalByID(ctx context.Context, id uint64) (*types.Proposal, error)
	Proposals(ctx context.Context, f ProposalFilter) ([]types.Proposal, error)
	DeleteProposal(ctx context.Context, id uint64) error
	// MarkReviewed flips status to the given value only while the proposal
	// is still pending, and reports how many rows changed. Zero rows means
	// the proposal is absent or was already reviewed.
	MarkReviewed(ctx context.Context, id uint64, status string, reviewer uint64, at time.Time, notes string) (int64, error)
	InsertPublished(ctx context.Context, rec types.PublishedRecord) error
	UserByID(ctx context.Context, id uint64) (*types.User, error)
	InTx(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateProposal(ctx context.Context, p *types.Proposal) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) ProposalByID(ctx context.Context, id uint64) (*types.Proposal, error) {
	var p types.Proposal
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) Proposals(ctx context.Context, f ProposalFilter) ([]types.Proposal, error) {
	q := s.db.WithContext(ctx).Model(&types.Proposal{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ContentType != "" {
		q = q.Where("content_type = ?", f.ContentType)
	}
	if f.ProposedBy != 0 {
		q = q.Where("proposed_by = ?", f.ProposedBy)
	}
	var out []types.Proposal
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore) DeleteProposal(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&types.Proposal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) MarkReviewed(ctx context.Context, id uint64, status string, reviewer uint64, at time.Time, notes string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&types.Proposal{}).
		Where("id = ? AND status = ?", id, types.ProposalPending).
		Updates(map[string]interface{}{
			"status":       status,
			"reviewed_by":  reviewer,
			"reviewed_at":  at,
			"review_notes": notes,
		})
	return res.RowsAffected, res.Error
}

func (s *gormStore) InsertPublished(ctx context.Context, rec types.PublishedRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (s *gormStore) UserByID(ctx context.Context, id uint64) (*types.User, error) {
	var u types.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
