package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
)

// ErrInvalidCredentials is returned by Login for both an unknown email and
// a wrong password, so a caller cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput is a registration request.
type RegisterInput struct {
	Nickname string
	Email    string
	Password string
	UserType string
}

// Service implements registration, login and role checks on top of the
// user repository.
type Service struct {
	users repository.UserRepository
}

// NewService creates an auth service.
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Register creates an account. Email and nickname collisions are checked
// independently; a role outside the known set is silently downgraded to
// User. A seed profile-history row is created so profile reads always
// resolve.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.PublicUser, error) {
	emailTaken, err := s.users.EmailExists(ctx, in.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, repository.ErrDuplicateEmail
	}

	nicknameTaken, err := s.users.NicknameExists(ctx, in.Nickname, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	}
	if nicknameTaken {
		return nil, repository.ErrDuplicateNickname
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	userType := in.UserType
	if !model.ValidRole(userType) {
		userType = model.RoleUser
	}

	user := &model.User{
		Nickname:     in.Nickname,
		Email:        in.Email,
		PasswordHash: hash,
		Type:         userType,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if err := s.users.AppendProfile(ctx, id, "", "", ""); err != nil {
		return nil, err
	}

	return s.withProfile(ctx, user.Sanitize()), nil
}

// Login verifies credentials and returns the sanitized user. The failure
// is uniform regardless of whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*model.PublicUser, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.withProfile(ctx, user.Sanitize()), nil
}

// CurrentUser re-fetches the sanitized user record for a session refresh.
// A missing user returns repository.ErrNotFound so the caller can drop
// the session.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*model.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withProfile(ctx, user.Sanitize()), nil
}

// withProfile folds the latest profile fields into the sanitized user.
// A profile read failure leaves the user as-is; the account data alone
// is enough for the session.
func (s *Service) withProfile(ctx context.Context, pub *model.PublicUser) *model.PublicUser {
	profile, err := s.users.GetProfile(ctx, pub.ID)
	if err != nil {
		return pub
	}
	pub.AvatarURL = profile.AvatarURL
	pub.Description = profile.Description
	return pub
}

// IsAuthor reports whether the user currently holds Author (or Admin)
// rights. The role is read from storage, never from session state, so a
// downgrade takes effect on the next privileged action.
func (s *Service) IsAuthor(ctx context.Context, id int64) (bool, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Type == model.RoleAuthor || user.Type == model.RoleAdmin, nil
}

// IsAdmin reports whether the user currently holds Admin rights.
func (s *Service) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Type == model.RoleAdmin, nil
}
