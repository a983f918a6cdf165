package service

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pekarna-api/internal/core/auth"
	"pekarna-api/internal/core/database"
	"pekarna-api/internal/domain"
	"pekarna-api/internal/repo"
)

var dbSeq atomic.Int64

func newTestAuth(t *testing.T) (*Auth, *auth.JWTer) {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewAuth(repo.NewUserRepo(db), jwter, zap.NewNop()), jwter
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, jwter := newTestAuth(t)

	u, err := svc.Register("Carol", "carol@x.com", "hunter2")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	tok, err := svc.Login("carol@x.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuth(t)

	_, err := svc.Register("Carol", "carol@x.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register("Carol Again", "carol@x.com", "other")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuth_Login_CollapsedFailures(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuth(t)

	_, err := svc.Register("Carol", "carol@x.com", "hunter2")
	require.NoError(t, err)

	// Unknown email and wrong password are indistinguishable.
	_, errUnknown := svc.Login("nobody@x.com", "hunter2")
	_, errWrongPw := svc.Login("carol@x.com", "wrong")
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestAuth_ListUsers_NeverExposesHash(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuth(t)

	_, err := svc.Register("Carol", "carol@x.com", "hunter2")
	require.NoError(t, err)
	_, err = svc.Register("Dave", "dave@x.com", "s3cret")
	require.NoError(t, err)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)

	b, err := json.Marshal(users)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "Hash")
	assert.Contains(t, string(b), "carol@x.com")
}

func TestAuth_Seed_Idempotent(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuth(t)

	accounts := []SeedAccount{
		{Name: "Alice Johnson", Email: "alice@example.com", Password: "password"},
		{Name: "Bob Smith", Email: "bob@example.com", Password: "password"},
	}
	require.NoError(t, svc.Seed(accounts))
	require.NoError(t, svc.Seed(accounts))

	users, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.Login("alice@example.com", "password")
	assert.NoError(t, err)
}
