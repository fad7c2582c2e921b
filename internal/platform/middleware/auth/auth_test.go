package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "test-signing-key-32-bytes-long!!"
	testIssuer = "veriname"
)

func TestMintValidateRoundtrip(t *testing.T) {
	v := NewVerifier(testKey, testIssuer)

	token, err := v.Mint("client-1", time.Minute)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.ClientID)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	v := NewVerifier(testKey, testIssuer)

	token, err := v.Mint("client-1", -time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := NewVerifier(testKey, testIssuer).Mint("client-1", time.Minute)
	require.NoError(t, err)

	_, err = NewVerifier("a-different-signing-key-entirely", testIssuer).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	token, err := NewVerifier(testKey, "someone-else").Mint("client-1", time.Minute)
	require.NoError(t, err)

	_, err = NewVerifier(testKey, testIssuer).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	v := NewVerifier(testKey, testIssuer)
	_, err := v.Validate("not.a.token")
	assert.Error(t, err)
}

func newProtectedServer(t *testing.T, v *Verifier) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, ClientID(r.Context()))
	})
	return RequireAuth(v, logger)(inner)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	v := NewVerifier(testKey, testIssuer)
	token, err := v.Mint("client-42", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/verify/lookup", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedServer(t, v).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-42", rec.Body.String())
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/verify/lookup", nil)
	rec := httptest.NewRecorder()
	newProtectedServer(t, NewVerifier(testKey, testIssuer)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"bearer lowercase", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodPost, "/verify/lookup", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		newProtectedServer(t, NewVerifier(testKey, testIssuer)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuthRejectsTamperedToken(t *testing.T) {
	v := NewVerifier(testKey, testIssuer)
	token, err := v.Mint("client-1", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/verify/lookup", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	rec := httptest.NewRecorder()
	newProtectedServer(t, v).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
