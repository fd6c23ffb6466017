package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// Guard runs the authorization check protected routes share: verify the
// bearer token, match its role discriminator against the expected role,
// then confirm a live account row exists for the subject. Each step can
// fail the request terminally; nothing is retried. The role comparison
// happens before the account lookup, so a mismatched token never reaches
// the database.
type Guard struct {
	tokens  *TokenManager
	guests  repository.GuestUserRepository
	members repository.MemberUserRepository
	admins  repository.AdminUserRepository
}

// NewGuard wires the guard with its token manager and account repositories.
func NewGuard(tokens *TokenManager, guests repository.GuestUserRepository, members repository.MemberUserRepository, admins repository.AdminUserRepository) *Guard {
	return &Guard{tokens: tokens, guests: guests, members: members, admins: admins}
}

// Authorize validates the raw Authorization header for the expected role
// and returns the authenticated payload, or a typed rejection.
func (g *Guard) Authorize(ctx context.Context, authorizationHeader string, expected domain.ActorRole) (*domain.AuthorizedPayload, error) {
	if authorizationHeader == "" {
		return nil, apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	if claims.Role != expected {
		return nil, apperrors.NewWrongRole(fmt.Sprintf("You're not a %s", expected))
	}

	if err := g.confirmAccount(ctx, expected, claims.SubjectID); err != nil {
		return nil, err
	}

	return &domain.AuthorizedPayload{ID: claims.SubjectID, Type: expected}, nil
}

// confirmAccount issues the single read against the role's account table.
// Missing, soft-deleted and inactive rows are reported as one condition,
// matching the messages clients already depend on.
func (g *Guard) confirmAccount(ctx context.Context, role domain.ActorRole, subjectID string) error {
	var err error
	switch role {
	case domain.RoleGuestUser:
		_, err = g.guests.GetActiveByID(ctx, subjectID)
	case domain.RoleMemberUser:
		_, err = g.members.GetActiveByID(ctx, subjectID)
	case domain.RoleAdminUser:
		_, err = g.admins.GetActiveByID(ctx, subjectID)
	default:
		return apperrors.NewWrongRole(fmt.Sprintf("You're not a %s", role))
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAccountNotEligible(fmt.Sprintf("You're not enrolled as a valid %s", role.Label()))
		}
		return apperrors.MapError(err)
	}
	return nil
}
