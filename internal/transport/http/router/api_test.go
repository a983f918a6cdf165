package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pekarna-api/internal/core/auth"
	"pekarna-api/internal/core/database"
	"pekarna-api/internal/domain"
	"pekarna-api/internal/repo"
	"pekarna-api/internal/service"
)

var dbSeq atomic.Int64

func newTestEngine(t *testing.T, protectUsers bool) (*gin.Engine, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	svc := service.NewAuth(repo.NewUserRepo(db), jwter, zap.NewNop())

	return NewAPIEngine(zap.NewNop(), svc, jwter, Options{ProtectUserList: protectUsers}), jwter
}

func doJSON(e *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginFlow(t *testing.T) {
	e, _ := newTestEngine(t, true)

	// Fresh registration succeeds with the Czech confirmation and no token.
	w := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Registrace úspěšná!")
	assert.NotContains(t, w.Body.String(), "token")

	// Same email again: 400, conflict message, nothing about the account.
	w = doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Other","email":"carol@x.com","password":"different"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
	assert.Contains(t, w.Body.String(), "E-mail už existuje.")
	assert.NotContains(t, w.Body.String(), "Carol")

	// Correct credentials produce a token.
	w = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Token)

	// Wrong password: 401.
	w = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"carol@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Špatné přihlašovací údaje.")
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	e, _ := newTestEngine(t, true)

	w := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	wUnknown := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@x.com","password":"hunter2"}`, "")
	wWrongPw := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"carol@x.com","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, wUnknown.Code, wWrongPw.Code)
	assert.Equal(t, wUnknown.Body.String(), wWrongPw.Body.String())
}

func TestListUsers_Protected(t *testing.T) {
	e, jwter := newTestEngine(t, true)

	w := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	// No token: 401.
	w = doJSON(e, http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	// Garbage token: same 401.
	w = doJSON(e, http.MethodGet, "/api/users", "", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expired token: same 401.
	expired := &auth.JWTer{Secret: jwter.Secret, Issuer: jwter.Issuer, TTL: -time.Minute}
	tok, err := expired.Issue(1)
	require.NoError(t, err)
	w = doJSON(e, http.MethodGet, "/api/users", "", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token: the listing, public fields only.
	w = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	w = doJSON(e, http.MethodGet, "/api/users", "", out.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Carol", users[0]["name"])
	assert.Equal(t, "carol@x.com", users[0]["email"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Hash")
}

func TestListUsers_PublicWhenUnprotected(t *testing.T) {
	e, _ := newTestEngine(t, false)

	w := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(e, http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestRegister_RejectsInvalidPayload(t *testing.T) {
	e, _ := newTestEngine(t, true)

	for _, body := range []string{
		`{"email":"carol@x.com","password":"hunter2"}`,           // missing name
		`{"name":"Carol","email":"not-an-email","password":"x"}`, // bad email
		`{"name":"Carol","email":"carol@x.com"}`,                 // missing password
		`not json`,
	} {
		w := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestEngine(t, true)

	w := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
