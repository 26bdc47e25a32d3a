package moderation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/defi-mexico/platform-backend/src/api/notify"
	"github.com/defi-mexico/platform-backend/src/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for exercising the state machine without
// a database. InTx runs the function directly; rollback behavior belongs
// to the gorm store and is not simulated here.
type memStore struct {
	mu        sync.Mutex
	nextID    uint64
	now       time.Time
	proposals map[uint64]types.Proposal
	published []types.PublishedRecord
	users     map[uint64]types.User
}

func newMemStore() *memStore {
	return &memStore{
		now:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		proposals: make(map[uint64]types.Proposal),
		users:     make(map[uint64]types.User),
	}
}

func (s *memStore) addUser(id uint64, email string, admin bool) {
	s.users[id] = types.User{ID: id, Email: email, IsAdmin: admin}
}

func (s *memStore) CreateProposal(_ context.Context, p *types.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.now = s.now.Add(time.Minute)
	p.ID = s.nextID
	p.CreatedAt = s.now
	s.proposals[p.ID] = *p
	return nil
}

func (s *memStore) ProposalByID(_ context.Context, id uint64) (*types.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *memStore) Proposals(_ context.Context, f ProposalFilter) ([]types.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.Proposal
	for _, p := range s.proposals {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.ContentType != "" && p.ContentType != f.ContentType {
			continue
		}
		if f.ProposedBy != 0 && p.ProposedBy != f.ProposedBy {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) DeleteProposal(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proposals[id]; !ok {
		return ErrNotFound
	}
	delete(s.proposals, id)
	return nil
}

func (s *memStore) MarkReviewed(_ context.Context, id uint64, status string, reviewer uint64, at time.Time, notes string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok || p.Status != types.ProposalPending {
		return 0, nil
	}
	p.Status = status
	p.ReviewedBy = &reviewer
	p.ReviewedAt = &at
	p.ReviewNotes = notes
	s.proposals[id] = p
	return 1, nil
}

func (s *memStore) InsertPublished(_ context.Context, rec types.PublishedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.published {
		if existing.TableName() == rec.TableName() && existing.GetSlug() == rec.GetSlug() {
			return ErrDuplicateSlug
		}
	}
	s.published = append(s.published, rec)
	return nil
}

func (s *memStore) UserByID(_ context.Context, id uint64) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *memStore) InTx(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (d *fakeDispatcher) Notify(_ context.Context, ev notify.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, ev)
	return nil
}

func (d *fakeDispatcher) byType(t string) []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []notify.Event
	for _, ev := range d.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestService() (*Service, *memStore, *fakeDispatcher) {
	store := newMemStore()
	store.addUser(1, "user@defimexico.org", false)
	store.addUser(2, "admin@defimexico.org", true)
	disp := &fakeDispatcher{}
	return NewService(store, disp), store, disp
}

func TestCreateForcesPending(t *testing.T) {
	svc, _, disp := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{
		"name":   "Acme DeFi",
		"status": "approved", // must be ignored
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, types.ProposalPending, p.Status)
	assert.Equal(t, uint64(1), p.ProposedBy)

	subs := disp.byType(notify.EventSubmitted)
	require.Len(t, subs, 1)
	assert.Equal(t, "user@defimexico.org", subs[0].RecipientEmail)
	assert.Equal(t, "Acme DeFi", subs[0].ContentTitle)
}

func TestCreateUnknownUser(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), types.TypeStartup, map[string]interface{}{"name": "x"}, 99)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestCreateInvalidContentType(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), "podcast", map[string]interface{}{"name": "x"}, 1)
	var ipe *InvalidPayloadError
	assert.ErrorAs(t, err, &ipe)
}

func TestApproveEndToEnd(t *testing.T) {
	svc, store, disp := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme DeFi"}, 1)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, p.ID, 2, "looks good")
	require.NoError(t, err)
	assert.Equal(t, types.ProposalApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, uint64(2), *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)
	assert.Equal(t, "looks good", approved.ReviewNotes)

	require.Len(t, store.published, 1)
	s, ok := store.published[0].(*types.Startup)
	require.True(t, ok)
	assert.Equal(t, "acme-defi", s.Slug)
	assert.Equal(t, "published", s.Status)
	assert.Zero(t, s.ViewCount)
	require.NotNil(t, s.ProposalID)
	assert.Equal(t, p.ID, *s.ProposalID)
	assert.Equal(t, uint64(1), s.CreatedBy)

	require.Len(t, disp.byType(notify.EventApproved), 1)
}

func TestApproveEventNormalizesFormat(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeEvent, map[string]interface{}{
		"title":  "DeFi 101",
		"format": "Online Workshop",
	}, 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	require.NoError(t, err)

	require.Len(t, store.published, 1)
	assert.Equal(t, "online", store.published[0].(*types.Event).EventType)
}

func TestApproveAlreadyReviewed(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, store.published, 1, "second approve must not transform again")
}

func TestApproveMissingCanonicalField(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"description": "anon"}, 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	var ipe *InvalidPayloadError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "name", ipe.Field)

	// Nothing was written: the proposal is still pending and reviewable.
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ProposalPending, got.Status)
	assert.Empty(t, store.published)
}

func TestApproveNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Approve(context.Background(), 404, 2, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveSlugCollisionAppendsID(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme DeFi"}, 1)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, first.ID, 2, "")
	require.NoError(t, err)

	second, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme DeFi"}, 1)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, second.ID, 2, "")
	require.NoError(t, err)

	require.Len(t, store.published, 2)
	assert.Equal(t, "acme-defi", store.published[0].GetSlug())
	assert.Equal(t, "acme-defi-2", store.published[1].GetSlug())
}

func TestRejectNeverTransforms(t *testing.T) {
	svc, store, disp := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, p.ID, 2, "duplicate submission")
	require.NoError(t, err)
	assert.Equal(t, types.ProposalRejected, rejected.Status)
	assert.Equal(t, "duplicate submission", rejected.ReviewNotes)
	assert.Empty(t, store.published)

	evs := disp.byType(notify.EventRejected)
	require.Len(t, evs, 1)
	assert.Equal(t, "duplicate submission", evs[0].ReviewNotes)
}

func TestRejectThenApprove(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, p.ID, 2, "no")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestNotifyFailureDoesNotAbort(t *testing.T) {
	svc, store, disp := newTestService()
	disp.err = errors.New("smtp down")
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, p.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, types.ProposalApproved, approved.Status)
	assert.Len(t, store.published, 1)
}

func TestListFiltersAndOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "A"}, 1)
	require.NoError(t, err)
	b, err := svc.Create(ctx, types.TypeEvent, map[string]interface{}{"title": "B"}, 1)
	require.NoError(t, err)
	c, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "C"}, 2)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, b.ID, 2, "")
	require.NoError(t, err)

	all, err := svc.List(ctx, ProposalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, c.ID, all[0].ID, "newest first")
	assert.Equal(t, a.ID, all[2].ID)

	pending, err := svc.List(ctx, ProposalFilter{Status: types.ProposalPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	startupsByUser1, err := svc.List(ctx, ProposalFilter{ContentType: types.TypeStartup, ProposedBy: 1})
	require.NoError(t, err)
	require.Len(t, startupsByUser1, 1)
	assert.Equal(t, a.ID, startupsByUser1[0].ID)
}

func TestDeleteLeavesPublishedRecord(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, p.ID, 2, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, store.published, 1, "published content is independent of its proposal")
}

func TestGetDenormalizesIdentities(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, types.TypeStartup, map[string]interface{}{"name": "Acme"}, 1)
	require.NoError(t, err)

	detail, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Submitter)
	assert.Equal(t, "user@defimexico.org", detail.Submitter.Email)
	assert.Nil(t, detail.Reviewer)

	_, err = svc.Approve(ctx, p.ID, 2, "")
	require.NoError(t, err)

	detail, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Reviewer)
	assert.Equal(t, "admin@defimexico.org", detail.Reviewer.Email)
}
