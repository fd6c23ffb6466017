package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("round-trip-secret", 30)

	token, tokenID, expiresAt, err := tm.GenerateToken(testSubjectID, domain.RoleMemberUser)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, testSubjectID, claims.SubjectID)
	require.Equal(t, domain.RoleMemberUser, claims.Role)
	require.Equal(t, tokenID, claims.RegisteredClaims.ID)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("issuer-secret", 30)
	verifier := NewTokenManager("verifier-secret", 30)

	token, _, _, err := issuer.GenerateToken(testSubjectID, domain.RoleGuestUser)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("expiry-secret", 30)
	tm.ttl = -time.Minute

	token, _, _, err := tm.GenerateToken(testSubjectID, domain.RoleAdminUser)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	require.Equal(t, time.Hour, tm.TTL())
}
