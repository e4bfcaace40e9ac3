package services

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"housingbuddy/internal/domain"
	"housingbuddy/internal/repos"
	"housingbuddy/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

type AuthService struct {
	Users   *repos.UserRepo
	Gate    *AdminGate
	Mailer  Mailer
	BaseURL string
	// How long a verification link stays valid.
	TokenTTL time.Duration
	Now      func() time.Time
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an unverified account and mails a verification link.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	fields := validate.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		fields["name"] = "must be 1-30 characters"
	}
	in.Name = name
	if in.Password != "" && !validate.Password(in.Password) {
		fields["password"] = "must be 8-64 characters with upper, lower, digit and symbol"
	}
	if err := invalid(fields); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Email: in.Email, Name: in.Name, Hash: string(hash)}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err := s.sendVerification(ctx, u); err != nil {
		return u, err
	}
	return u, nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *domain.User) error {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := uuid.NewString()
	if err := s.Users.PutVerificationToken(u.ID, token, s.now().Add(ttl)); err != nil {
		return err
	}
	link := strings.TrimRight(s.BaseURL, "/") + "/api/auth/verify?token=" + url.QueryEscape(token)
	return s.Mailer.SendVerification(ctx, u.Email, u.Name, link)
}

// Verify consumes a verification token.
func (s *AuthService) Verify(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrBadToken
	}
	if _, err := s.Users.ConsumeVerificationToken(token, s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBadToken
		}
		return err
	}
	return nil
}

// ResendVerification mails a fresh link. Unknown or already verified
// addresses succeed silently so the endpoint cannot probe accounts.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email, ok := validate.Email(email)
	if !ok {
		return invalid(map[string]string{"email": "must be a valid email"})
	}
	u, err := s.Users.ByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.Verified {
		return nil
	}
	return s.sendVerification(ctx, u)
}

// Login binds the session to the user. A regular login always ends admin
// mode on the same session.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if !u.Verified {
		return nil, ErrNotVerified
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	if s.Gate != nil {
		if err := s.Gate.Logout(ctx, sid); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
