package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optimanager/m/domain"
)

func TestIssueVerify(t *testing.T) {
	tokens := NewTokens("secret", 8*time.Hour)

	signed, err := tokens.Issue(domain.User{ID: 3, Name: "Priya", Role: domain.RoleEmployee})
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.EqualValues(t, 3, claims.UserID)
	assert.Equal(t, "Priya", claims.Name)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
	assert.False(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("secret", 8*time.Hour)
	issuedAt := time.Now().Add(-9 * time.Hour)
	tokens.now = func() time.Time { return issuedAt }
	signed, err := tokens.Issue(domain.User{ID: 1, Name: "A", Role: domain.RoleAdmin})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecretAndAlgorithm(t *testing.T) {
	signed, err := NewTokens("other", time.Hour).Issue(domain.User{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: domain.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Verify(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokens("secret", time.Hour).Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret!"))
}
