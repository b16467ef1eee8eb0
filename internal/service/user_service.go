package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"flight-finder/internal/domain"
	"flight-finder/internal/repository"
)

var (
	// ErrEmailNotRegistered indicates a login attempt for an unknown email.
	ErrEmailNotRegistered = errors.New("email not registered")
	// ErrIncorrectPassword indicates the password did not match.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrEmailTaken is returned when signing up with an email that already
	// belongs to a password account.
	ErrEmailTaken = errors.New("email already on file")
	// ErrFacebookAccount is returned when signing up with an email that was
	// registered through Facebook.
	ErrFacebookAccount = errors.New("account registered with facebook")
)

// FacebookProfile carries the fields the client obtains from Facebook after
// completing the OAuth flow on its side.
type FacebookProfile struct {
	ID    string
	Name  string
	Email string
}

// UserService describes account lifecycle operations.
type UserService interface {
	SignUp(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	FacebookLogin(ctx context.Context, profile FacebookProfile, accessToken string) (*domain.User, error)
	FindByAccessToken(ctx context.Context, token string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
	salt  string
}

// NewUserService builds a UserService hashing passwords with the given
// salt. The salt is configuration, not module state, so it can differ per
// deployment.
func NewUserService(users repository.UserRepository, salt string) UserService {
	return &userService{
		users: users,
		salt:  strings.TrimSpace(salt),
	}
}

func (s *userService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if !existing.HasPassword() {
			return nil, ErrFacebookAccount
		}
		return nil, ErrEmailTaken
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Password:    HashPassword(password, s.salt),
		Salt:        s.salt,
		AccessToken: uuid.NewString(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// two signups for the same email can race past the lookup above;
		// the unique index settles it
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmailNotRegistered
		}
		return nil, err
	}

	if !VerifyPassword(password, user.Salt, user.Password) {
		return nil, ErrIncorrectPassword
	}

	// the token issued at signup is reused, never rotated
	return user, nil
}

func (s *userService) FacebookLogin(ctx context.Context, profile FacebookProfile, accessToken string) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(profile.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &domain.User{
		ID:          profile.ID,
		Name:        strings.TrimSpace(profile.Name),
		Email:       email,
		AccessToken: accessToken,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create facebook user: %w", err)
	}
	return user, nil
}

func (s *userService) FindByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	return s.users.GetByAccessToken(ctx, token)
}
