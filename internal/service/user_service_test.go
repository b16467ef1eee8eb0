package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-finder/internal/domain"
	"flight-finder/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byToken map[string]*domain.User

	createErr error
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byToken: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.byEmail[user.Email] = user
	f.byToken[user.AccessToken] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.byToken[token]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestSignUpFreshEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	user, err := svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.AccessToken)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "pepper", user.Salt)
	assert.True(t, VerifyPassword("secret", user.Salt, user.Password))

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, user.AccessToken, stored.AccessToken)
}

func TestSignUpNormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	user, err := svc.SignUp(context.Background(), "A", "  A@X.Com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	_, err := svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "B", "a@x.com", "other1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpDuplicateFacebookEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	_, err := svc.FacebookLogin(context.Background(), FacebookProfile{
		ID:    "fb-1",
		Name:  "A",
		Email: "a@x.com",
	}, "fb-token")
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	assert.ErrorIs(t, err, ErrFacebookAccount)
}

func TestSignUpLosesCreateRace(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	// the other signup won between the lookup and the insert
	repo.createErr = repository.ErrDuplicateEmail

	_, err := svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	created, err := svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "a@x.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, created.AccessToken, user.AccessToken, "token must not rotate on login")
	})

	t.Run("incorrect password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "b@x.com", "secret")
		assert.ErrorIs(t, err, ErrEmailNotRegistered)
	})
}

func TestLoginFacebookOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	_, err := svc.FacebookLogin(context.Background(), FacebookProfile{
		ID:    "fb-1",
		Name:  "A",
		Email: "a@x.com",
	}, "fb-token")
	require.NoError(t, err)

	// no stored password, nothing can match
	_, err = svc.Login(context.Background(), "a@x.com", "anything")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestFacebookLoginExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	first, err := svc.FacebookLogin(context.Background(), FacebookProfile{
		ID:    "fb-1",
		Name:  "A",
		Email: "a@x.com",
	}, "fb-token")
	require.NoError(t, err)

	again, err := svc.FacebookLogin(context.Background(), FacebookProfile{
		ID:    "fb-other",
		Name:  "A",
		Email: "a@x.com",
	}, "newer-token")
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.AccessToken, again.AccessToken, "existing record wins")
}

func TestFacebookLoginCreatesWithoutPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	user, err := svc.FacebookLogin(context.Background(), FacebookProfile{
		ID:    "fb-1",
		Name:  "A",
		Email: "a@x.com",
	}, "fb-token")
	require.NoError(t, err)

	assert.Equal(t, "fb-1", user.ID)
	assert.Equal(t, "fb-token", user.AccessToken)
	assert.False(t, user.HasPassword())
	assert.Empty(t, user.Salt)
}

func TestFindByAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, "pepper")

	created, err := svc.SignUp(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)

	user, err := svc.FindByAccessToken(context.Background(), created.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.Summary(), user.Summary())

	_, err = svc.FindByAccessToken(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
