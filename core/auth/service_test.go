package auth

import (
	"context"
	"testing"

	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo covers the slice of the user repository the auth service
// touches.
type fakeUserRepo struct {
	repository.UserRepository

	emailTaken    bool
	nicknameTaken bool
	byEmail       *model.User
	byID          *model.User
	profile       *model.Profile

	created        *model.User
	profileSeeds   int
	profileAvatar  string
	profileGender  string
	profileDescrip string
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	return f.emailTaken, nil
}

func (f *fakeUserRepo) NicknameExists(ctx context.Context, nickname string, excludeUserID int64) (bool, error) {
	return f.nicknameTaken, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	f.created = user
	return 11, nil
}

func (f *fakeUserRepo) AppendProfile(ctx context.Context, userID int64, avatarURL, gender, description string) error {
	f.profileSeeds++
	f.profileAvatar = avatarURL
	f.profileGender = gender
	f.profileDescrip = description
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.byEmail == nil {
		return nil, repository.ErrNotFound
	}
	return f.byEmail, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if f.byID == nil {
		return nil, repository.ErrNotFound
	}
	return f.byID, nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	if f.profile == nil {
		return nil, repository.ErrNotFound
	}
	return f.profile, nil
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{emailTaken: true})

	_, err := svc.Register(context.Background(), RegisterInput{
		Nickname: "tema",
		Email:    "tema@example.com",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegister_DuplicateNickname(t *testing.T) {
	svc := NewService(&fakeUserRepo{nicknameTaken: true})

	_, err := svc.Register(context.Background(), RegisterInput{
		Nickname: "tema",
		Email:    "tema@example.com",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateNickname)
}

func TestRegister_DowngradesUnknownRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Nickname: "tema",
		Email:    "tema@example.com",
		Password: "secret1",
		UserType: "Superuser",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Type)
	assert.Equal(t, int64(11), user.ID)
	assert.Equal(t, 1, repo.profileSeeds, "registration seeds one profile row")
}

func TestRegister_KeepsKnownRoleAndHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Nickname: "tema",
		Email:    "tema@example.com",
		Password: "secret1",
		UserType: model.RoleAuthor,
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleAuthor, user.Type)
	assert.NotEqual(t, "secret1", repo.created.PasswordHash)
	assert.True(t, VerifyPassword("secret1", repo.created.PasswordHash))
}

func TestLogin_UniformFailure(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	known := &model.User{ID: 1, Email: "tema@example.com", PasswordHash: hash}

	// Unknown email and wrong password must be indistinguishable.
	svc := NewService(&fakeUserRepo{})
	_, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	svc = NewService(&fakeUserRepo{byEmail: known})
	_, err = svc.Login(context.Background(), "tema@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SanitizesUser(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	svc := NewService(&fakeUserRepo{byEmail: &model.User{
		ID:           1,
		Nickname:     "tema",
		Email:        "tema@example.com",
		PasswordHash: hash,
		Type:         model.RoleUser,
	}})

	user, err := svc.Login(context.Background(), "tema@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "tema", user.Nickname)
}

func TestLogin_FoldsProfileIntoUser(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	svc := NewService(&fakeUserRepo{
		byEmail: &model.User{
			ID:           1,
			Nickname:     "tema",
			Email:        "tema@example.com",
			PasswordHash: hash,
			Type:         model.RoleUser,
		},
		profile: &model.Profile{
			UserID:      1,
			AvatarURL:   "https://cdn.example/tema.png",
			Description: "night owl",
		},
	})

	user, err := svc.Login(context.Background(), "tema@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/tema.png", user.AvatarURL)
	assert.Equal(t, "night owl", user.Description)
}

func TestCurrentUser_SurvivesMissingProfile(t *testing.T) {
	// The account record alone must still produce a usable session user.
	svc := NewService(&fakeUserRepo{byID: &model.User{
		ID:       1,
		Nickname: "tema",
		Type:     model.RoleUser,
	}})

	user, err := svc.CurrentUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "tema", user.Nickname)
	assert.Empty(t, user.AvatarURL)
}

func TestIsAuthor_AdminCounts(t *testing.T) {
	svc := NewService(&fakeUserRepo{byID: &model.User{ID: 1, Type: model.RoleAdmin}})

	ok, err := svc.IsAuthor(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAuthor_MissingUserIsFalse(t *testing.T) {
	svc := NewService(&fakeUserRepo{})

	ok, err := svc.IsAuthor(context.Background(), 404)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAdmin_PlainUserIsFalse(t *testing.T) {
	svc := NewService(&fakeUserRepo{byID: &model.User{ID: 1, Type: model.RoleAuthor}})

	ok, err := svc.IsAdmin(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, ok)
}
