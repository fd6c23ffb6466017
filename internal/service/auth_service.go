package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// IssuedToken bundles the credential returned by join/login flows.
type IssuedToken struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// AuthService coordinates account creation, login and session lifecycle.
type AuthService struct {
	guests     repository.GuestUserRepository
	members    repository.MemberUserRepository
	admins     repository.AdminUserRepository
	sessions   repository.SessionRepository
	cache      repository.SessionCache
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	GuestRepo    repository.GuestUserRepository
	MemberRepo   repository.MemberUserRepository
	AdminRepo    repository.AdminUserRepository
	SessionRepo  repository.SessionRepository
	SessionCache repository.SessionCache
	Dispatcher   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		guests:     deps.GuestRepo,
		members:    deps.MemberRepo,
		admins:     deps.AdminRepo,
		sessions:   deps.SessionRepo,
		cache:      deps.SessionCache,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// JoinGuest creates an anonymous guest account and issues its token.
func (s *AuthService) JoinGuest(ctx context.Context) (*domain.GuestUser, *IssuedToken, error) {
	guest := &domain.GuestUser{}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, nil, err
	}

	issued, err := s.openSession(ctx, guest.ID, domain.RoleGuestUser)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventGuestJoined, domain.RoleGuestUser, guest.ID, "guest_user", guest.ID, nil)
	return guest, issued, nil
}

// RegisterMember creates a new member account.
func (s *AuthService) RegisterMember(ctx context.Context, email, displayName, password string) (*domain.MemberUser, *IssuedToken, error) {
	if _, err := s.members.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	member := &domain.MemberUser{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, nil, err
	}

	issued, err := s.openSession(ctx, member.ID, domain.RoleMemberUser)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventMemberRegistered, domain.RoleMemberUser, member.ID, "member_user", member.ID, nil)
	return member, issued, nil
}

// LoginMember authenticates a member by email and password.
func (s *AuthService) LoginMember(ctx context.Context, email, password string) (*domain.MemberUser, *IssuedToken, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, nil, err
	}
	if !member.Active {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}

	issued, err := s.openSession(ctx, member.ID, domain.RoleMemberUser)
	if err != nil {
		return nil, nil, err
	}
	return member, issued, nil
}

// LoginAdmin authenticates an administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.AdminUser, *IssuedToken, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, nil, err
	}
	if !admin.Active {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}

	issued, err := s.openSession(ctx, admin.ID, domain.RoleAdminUser)
	if err != nil {
		return nil, nil, err
	}
	return admin, issued, nil
}

// Logout revokes the session behind the presented token. Revocation is
// idempotent at the API level: an already-revoked session is not an error.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokenMgr.ParseToken(rawToken)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	sessionID := claims.RegisteredClaims.ID
	if err := s.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if err := s.cache.Drop(ctx, sessionID); err != nil {
		return err
	}

	s.publish(ctx, events.EventSessionRevoked, claims.Role, claims.SubjectID, "session", sessionID,
		events.SessionPayload{SessionID: sessionID})
	return nil
}

// SuspendMember deactivates a member account and revokes its live
// sessions. Admin-only; the guard enforces the caller's role upstream.
func (s *AuthService) SuspendMember(ctx context.Context, actor domain.AuthorizedPayload, memberID string) error {
	member, err := s.members.GetActiveByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return err
	}

	member.Active = false
	if err := s.members.Update(ctx, member); err != nil {
		return err
	}

	if _, err := s.sessions.RevokeAllForActor(ctx, domain.RoleMemberUser, memberID); err != nil {
		return err
	}

	s.publish(ctx, events.EventSessionRevoked, actor.Type, actor.ID, "member_user", memberID, nil)
	return nil
}

// SessionStatus reports a session's persisted state plus whether the
// Redis mirror still considers it live.
type SessionStatus struct {
	Session   *domain.Session
	CacheLive bool
}

// InspectSession looks up one session for administrative review.
func (s *AuthService) InspectSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", map[string]any{"id": sessionID})
		}
		return nil, err
	}

	live, err := s.cache.IsLive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionStatus{Session: session, CacheLive: live}, nil
}

// TokenManager exposes the underlying token manager for guard wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) openSession(ctx context.Context, subjectID string, role domain.ActorRole) (*IssuedToken, error) {
	token, tokenID, expiresAt, err := s.tokenMgr.GenerateToken(subjectID, role)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256([]byte(token))
	session := &domain.Session{
		ID:        tokenID,
		ActorRole: role,
		ActorID:   subjectID,
		TokenHash: hex.EncodeToString(digest[:]),
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.cache.MarkLive(ctx, session.ID, time.Until(expiresAt)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSessionOpened, role, subjectID, "session", session.ID,
		events.SessionPayload{SessionID: session.ID})
	return &IssuedToken{Token: token, SessionID: session.ID, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, role domain.ActorRole, actorID, targetType, targetID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Actor:      events.Actor{Role: role, ID: actorID},
		TargetType: targetType,
		TargetID:   targetID,
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}
