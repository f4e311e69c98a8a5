package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func signed(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func userHeaderValue(json string) string {
	return base64.StdEncoding.EncodeToString([]byte(json))
}

// serve прогоняет запрос через Auth и возвращает сессию, увиденную обработчиком
func serve(t *testing.T, opts AuthOptions, headers map[string]string) (*domain.Session, bool) {
	t.Helper()
	opts.Now = func() time.Time { return now }

	var (
		got *domain.Session
		ok  bool
	)
	h := Auth(opts, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ContextSessionProvider{}.GetSession(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flows/x", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuth_Guest(t *testing.T) {
	_, ok := serve(t, AuthOptions{}, nil)
	assert.False(t, ok)

	_, ok = serve(t, AuthOptions{}, map[string]string{"Authorization": "Basic abc"})
	assert.False(t, ok)
}

func TestAuth_SessionWithUser(t *testing.T) {
	token := signed(t, "s3cret", now.Add(time.Hour))
	session, ok := serve(t, AuthOptions{JWTSecret: "s3cret"}, map[string]string{
		"Authorization": "Bearer " + token,
		"X-Kelale-User": userHeaderValue(`{"_id":"u1","firstName":"Abel","lastName":"T","phone":"0911","gender":"Male"}`),
	})
	require.True(t, ok)
	assert.Equal(t, token, session.Token)
	require.NotNil(t, session.ExpiresAt)
	require.NotNil(t, session.User)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "0911", session.User.PhoneNumber)
	assert.Equal(t, domain.GenderMale, session.User.Gender)
}

func TestAuth_RejectedTokens(t *testing.T) {
	tests := []struct {
		name  string
		opts  AuthOptions
		token string
	}{
		{name: "expired, no secret", opts: AuthOptions{}, token: signed(t, "any", now.Add(-time.Minute))},
		{name: "expired, with secret", opts: AuthOptions{JWTSecret: "s3cret"}, token: signed(t, "s3cret", now.Add(-time.Minute))},
		{name: "wrong signature", opts: AuthOptions{JWTSecret: "s3cret"}, token: signed(t, "other", now.Add(time.Hour))},
		{name: "not a jwt, with secret", opts: AuthOptions{JWTSecret: "s3cret"}, token: "opaque-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := serve(t, tt.opts, map[string]string{"Authorization": "Bearer " + tt.token})
			assert.False(t, ok)
		})
	}
}

func TestAuth_OpaqueTokenWithoutSecret(t *testing.T) {
	session, ok := serve(t, AuthOptions{}, map[string]string{"Authorization": "Bearer opaque-token"})
	require.True(t, ok)
	assert.Nil(t, session.ExpiresAt)
	assert.Nil(t, session.User)
}

func TestAuth_BrokenUserHeaderKeepsToken(t *testing.T) {
	session, ok := serve(t, AuthOptions{}, map[string]string{
		"Authorization": "Bearer opaque-token",
		"X-Kelale-User": "%%%",
	})
	require.True(t, ok)
	assert.Nil(t, session.User)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}

func TestAuth_TokenSubjectWinsOverUserHeader(t *testing.T) {
	token := signed(t, "s3cret", now.Add(time.Hour))
	session, ok := serve(t, AuthOptions{JWTSecret: "s3cret"}, map[string]string{
		"Authorization": "Bearer " + token,
		"X-Kelale-User": userHeaderValue(`{"id":"victim","firstName":"Abel","lastName":"T"}`),
	})
	require.True(t, ok)
	assert.True(t, session.Verified)
	assert.Equal(t, "u1", session.Subject)
	assert.Equal(t, "u1", session.OwnerID())
	require.NotNil(t, session.User)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "Abel", session.User.FirstName)
}

func TestAuth_IDClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u7",
		"exp": now.Add(time.Hour).Unix(),
	})
	signedToken, err := token.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	session, ok := serve(t, AuthOptions{JWTSecret: "s3cret"}, map[string]string{"Authorization": "Bearer " + signedToken})
	require.True(t, ok)
	assert.Equal(t, "u7", session.OwnerID())
}

func TestAuth_UnverifiedSessionHasNoOwner(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "opaque token", token: "opaque-garbage"},
		{name: "unsigned jwt claims", token: signed(t, "anything", now.Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, ok := serve(t, AuthOptions{}, map[string]string{
				"Authorization": "Bearer " + tt.token,
				"X-Kelale-User": userHeaderValue(`{"id":"victim","firstName":"Abel","lastName":"T"}`),
			})
			require.True(t, ok)
			assert.False(t, session.Verified)
			assert.Empty(t, session.OwnerID())
			assert.Equal(t, "token:"+tt.token, session.Principal())
		})
	}
}
