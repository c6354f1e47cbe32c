package jwtverify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func claimsAt(now time.Time, ttl time.Duration) Claims {
	return Claims{
		UserID:   "5a3d5da59070081a82a3445b",
		Username: "ghong1987",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, err := Sign(claimsAt(now, time.Hour), secret)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret, func() time.Time { return now.Add(time.Minute) })
	require.NoError(t, err)
	assert.Equal(t, "5a3d5da59070081a82a3445b", claims.UserID)
	assert.Equal(t, "ghong1987", claims.Username)
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	token, err := Sign(claimsAt(now, time.Hour), secret)
	require.NoError(t, err)

	_, err = ParseToken(token, secret, func() time.Time { return now.Add(2 * time.Hour) })
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := Sign(claimsAt(time.Now(), time.Hour), secret)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("another-secret-another-secret-xx"), nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", secret, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_MissingID(t *testing.T) {
	c := claimsAt(time.Now(), time.Hour)
	c.UserID = ""
	token, err := Sign(c, secret)
	require.NoError(t, err)

	_, err = ParseToken(token, secret, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claimsAt(time.Now(), time.Hour))
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = ParseToken(signed, secret, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{"missing", "", "", ErrTokenMissing},
		{"wrong scheme", "Basic abc", "", ErrTokenMissing},
		{"empty bearer", "Bearer ", "", ErrTokenMissing},
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			token, err := BearerToken(req)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.token, token)
		})
	}
}
