package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
)

// In-memory fakes for the repository interfaces. They model the same
// soft-delete and is_active filtering the SQL implementations apply, so
// service tests observe the behavior the real queries produce.

type fakeGuestRepo struct {
	repository.GuestUserRepository
	guests map[string]*domain.GuestUser
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[string]*domain.GuestUser)}
}

func (f *fakeGuestRepo) Create(_ context.Context, guest *domain.GuestUser) error {
	guest.ID = uuid.NewString()
	guest.CreatedAt = time.Now()
	f.guests[guest.ID] = guest
	return nil
}

func (f *fakeGuestRepo) GetActiveByID(_ context.Context, id string) (*domain.GuestUser, error) {
	guest, ok := f.guests[id]
	if !ok || guest.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	return guest, nil
}

type fakeMemberRepo struct {
	repository.MemberUserRepository
	members map[string]*domain.MemberUser
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*domain.MemberUser)}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.MemberUser) error {
	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	clone := *member
	f.members[member.ID] = &clone
	return nil
}

func (f *fakeMemberRepo) Update(_ context.Context, member *domain.MemberUser) error {
	existing, ok := f.members[member.ID]
	if !ok || existing.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	clone := *member
	f.members[member.ID] = &clone
	return nil
}

func (f *fakeMemberRepo) GetActiveByID(_ context.Context, id string) (*domain.MemberUser, error) {
	member, ok := f.members[id]
	if !ok || member.DeletedAt != nil || !member.Active {
		return nil, pgx.ErrNoRows
	}
	clone := *member
	return &clone, nil
}

func (f *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*domain.MemberUser, error) {
	for _, member := range f.members {
		if member.Email == email && member.DeletedAt == nil {
			clone := *member
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeAdminRepo struct {
	repository.AdminUserRepository
	admins map[string]*domain.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.AdminUser)}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.AdminUser) error {
	admin.ID = uuid.NewString()
	clone := *admin
	f.admins[admin.ID] = &clone
	return nil
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	for _, admin := range f.admins {
		if admin.Email == email && admin.DeletedAt == nil {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeSessionRepo struct {
	repository.SessionRepository
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	clone := *session
	f.sessions[session.ID] = &clone
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, id string) error {
	session, ok := f.sessions[id]
	if !ok || session.RevokedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllForActor(_ context.Context, role domain.ActorRole, actorID string) (int64, error) {
	var revoked int64
	now := time.Now()
	for _, session := range f.sessions {
		if session.ActorRole == role && session.ActorID == actorID && session.RevokedAt == nil {
			session.RevokedAt = &now
			revoked++
		}
	}
	return revoked, nil
}

type fakeSessionCache struct {
	mu   sync.Mutex
	live map[string]bool
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{live: make(map[string]bool)}
}

func (f *fakeSessionCache) MarkLive(_ context.Context, sessionID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.live[sessionID] = true
	return nil
}

func (f *fakeSessionCache) IsLive(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[sessionID], nil
}

func (f *fakeSessionCache) Drop(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, sessionID)
	return nil
}

type fakeCommunityRepo struct {
	repository.CommunityRepository
	communities map[string]*domain.Community
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{communities: make(map[string]*domain.Community)}
}

func (f *fakeCommunityRepo) Create(_ context.Context, community *domain.Community) error {
	community.ID = uuid.NewString()
	community.CreatedAt = time.Now()
	community.UpdatedAt = community.CreatedAt
	clone := *community
	f.communities[community.ID] = &clone
	return nil
}

func (f *fakeCommunityRepo) Update(_ context.Context, community *domain.Community) error {
	existing, ok := f.communities[community.ID]
	if !ok || existing.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	clone := *community
	f.communities[community.ID] = &clone
	return nil
}

func (f *fakeCommunityRepo) GetByID(_ context.Context, id string) (*domain.Community, error) {
	community, ok := f.communities[id]
	if !ok || community.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *community
	return &clone, nil
}

func (f *fakeCommunityRepo) GetByName(_ context.Context, name string) (*domain.Community, error) {
	for _, community := range f.communities {
		if community.Name == name && community.DeletedAt == nil {
			clone := *community
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCommunityRepo) SoftDelete(_ context.Context, id string) error {
	community, ok := f.communities[id]
	if !ok || community.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	community.DeletedAt = &now
	return nil
}

type fakeCategoryRepo struct {
	repository.CategoryRepository
	categories map[string]domain.Category
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]domain.Category)}
	for _, cat := range categories {
		repo.categories[cat.ID] = cat
	}
	return repo
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, cat := range f.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &cat, nil
}

type fakePostRepo struct {
	repository.PostRepository
	posts map[string]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	existing, ok := f.posts[post.ID]
	if !ok || existing.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	post, ok := f.posts[id]
	if !ok || post.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) SoftDelete(_ context.Context, id string) error {
	post, ok := f.posts[id]
	if !ok || post.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	post.DeletedAt = &now
	return nil
}

type fakeCommentRepo struct {
	repository.CommentRepository
	comments map[string]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok || comment.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *comment
	return &clone, nil
}

func (f *fakeCommentRepo) SoftDelete(_ context.Context, id string) error {
	comment, ok := f.comments[id]
	if !ok || comment.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	comment.DeletedAt = &now
	return nil
}

type fakeVoteRepo struct {
	repository.VoteRepository
	votes map[string]*domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[string]*domain.Vote)}
}

func voteKey(memberID string, targetType domain.VoteTarget, targetID string) string {
	return memberID + "|" + string(targetType) + "|" + targetID
}

func (f *fakeVoteRepo) Upsert(_ context.Context, vote *domain.Vote) error {
	key := voteKey(vote.MemberID, vote.TargetType, vote.TargetID)
	if existing, ok := f.votes[key]; ok {
		existing.Value = vote.Value
		existing.UpdatedAt = time.Now()
		*vote = *existing
		return nil
	}
	vote.ID = uuid.NewString()
	vote.CreatedAt = time.Now()
	vote.UpdatedAt = vote.CreatedAt
	clone := *vote
	f.votes[key] = &clone
	return nil
}

func (f *fakeVoteRepo) Score(_ context.Context, targetType domain.VoteTarget, targetID string) (int64, error) {
	var score int64
	for _, vote := range f.votes {
		if vote.TargetType == targetType && vote.TargetID == targetID {
			score += int64(vote.Value)
		}
	}
	return score, nil
}

type fakeAuditRepo struct {
	repository.AuditRepository
	entries []domain.AuditEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditEntry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListRecent(_ context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	if offset >= len(f.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.entries) {
		end = len(f.entries)
	}
	out := make([]domain.AuditEntry, end-offset)
	copy(out, f.entries[offset:end])
	return out, nil
}

// recordingDispatcher collects published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
	listeners map[events.EventType][]events.EventHandler
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{listeners: make(map[events.EventType][]events.EventHandler)}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	handlers := append([]events.EventHandler{}, d.listeners[event.Type]...)
	d.mu.Unlock()

	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func (d *recordingDispatcher) eventTypes() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		out = append(out, event.Type)
	}
	return out
}
