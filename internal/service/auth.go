package service

import (
	"errors"

	"go.uber.org/zap"

	"pekarna-api/internal/core/auth"
	"pekarna-api/internal/domain"
	"pekarna-api/pkg/utils"
)

// Auth implements the registration / login / listing flows on top of the
// user repository and the token signer.
type Auth struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuth(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *Auth {
	return &Auth{users: users, jwter: jwter, log: log}
}

// Register creates a user with a freshly hashed password. The friendly-path
// duplicate check runs first; the unique index on email is what actually
// guarantees uniqueness when two registrations race.
func (s *Auth) Register(name, email, password string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("id", u.ID))
	return u, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Auth) Login(email, password string) (string, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.jwter.Issue(u.ID)
}

// ListUsers returns every user stripped to the public projection.
func (s *Auth) ListUsers() ([]domain.PublicUser, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

type SeedAccount struct {
	Name     string
	Email    string
	Password string
}

// Seed registers demo accounts. Already-existing emails are skipped;
// anything else is reported.
func (s *Auth) Seed(accounts []SeedAccount) error {
	for _, a := range accounts {
		if _, err := s.Register(a.Name, a.Email, a.Password); err != nil && !errors.Is(err, domain.ErrEmailTaken) {
			return err
		}
	}
	return nil
}
