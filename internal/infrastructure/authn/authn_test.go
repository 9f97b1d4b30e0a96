//go:build unit
// +build unit

package authn

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestBcryptHasher(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong"), clmerr.ErrUnauthorized)
	assert.Error(t, hasher.Compare("not-a-hash", "x"))

	_, err = NewBcryptHasher(99)
	assert.Error(t, err)
}

func testUser() *users.User {
	return &users.User{ID: uuid.NewString(), OrganizationID: uuid.NewString(), Role: users.RoleLegal}
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	user := testUser()

	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, user.OrganizationID, actor.OrganizationID)
	assert.Equal(t, users.RoleLegal, actor.Role)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	iss, err := NewJWTIssuer(testSecret, time.Minute)
	require.NoError(t, err)
	issuer := iss.(*jwtIssuer)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, clmerr.ErrUnauthorized)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTIssuer_RejectsForeignSecretAndAlgorithm(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewJWTIssuer(strings.Repeat("x", 32), time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, clmerr.ErrUnauthorized)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, Subject: "u", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		OrganizationID:   "o",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, clmerr.ErrUnauthorized)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, clmerr.ErrUnauthorized)
}

func TestNewJWTIssuer_ShortSecret(t *testing.T) {
	_, err := NewJWTIssuer("short", time.Hour)
	assert.Error(t, err)
}
