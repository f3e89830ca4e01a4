package service

import (
	"context"
	"errors"
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/logger"
	"github.com/moicalder/moimac.com/internal/repository"

	"go.uber.org/zap"
)

// UserDirectoryLimit caps the public user directory.
const UserDirectoryLimit = 100

// UserService defines the interface for user-related operations.
type UserService interface {
	GetOrCreateUser(ctx context.Context, id, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	IsUsernameAvailable(ctx context.Context, candidate, excludingUserID string) (bool, error)
	GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error)
	ListUsers(ctx context.Context) ([]domain.PublicProfile, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// GetOrCreateUser returns the user with id, creating it on first contact.
// The username defaults to the sanitised local part of the email when that
// is a valid, unclaimed username; otherwise it stays empty until the player
// picks one.
func (s *userServiceImpl) GetOrCreateUser(ctx context.Context, id, email string) (*domain.User, error) {
	var verrs domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		verrs = append(verrs, domain.NewMissingFieldError("id"))
	}
	if strings.TrimSpace(email) == "" {
		verrs = append(verrs, domain.NewMissingFieldError("email"))
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	existing, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if existing != nil {
		return existing, nil
	}

	username := s.defaultUsername(ctx, email)

	user, err := s.userRepo.CreateUser(ctx, id, email, username)
	if errors.Is(err, repository.ErrUsernameConflict) {
		// Someone claimed the default between the check and the insert.
		user, err = s.userRepo.CreateUser(ctx, id, email, nil)
	}
	if errors.Is(err, repository.ErrUserExists) {
		// A concurrent first contact won the insert; read its row.
		existing, getErr := s.userRepo.GetUserByID(ctx, id)
		if getErr != nil {
			return nil, domain.NewInternalError("Failed to load user", getErr)
		}
		if existing == nil {
			return nil, domain.NewError(domain.CodeConflict, "Email is already registered to another account", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	logger.Get().Info("User created", zap.String("userID", id), zap.Bool("hasUsername", user.HasUsername()))
	return user, nil
}

func (s *userServiceImpl) defaultUsername(ctx context.Context, email string) *string {
	candidate := domain.DefaultUsername(email)
	if !domain.IsValidUsername(candidate) {
		return nil
	}
	taken, err := s.userRepo.IsUsernameTaken(ctx, candidate, "")
	if err != nil {
		logger.Get().Warn("Could not check default username, leaving it empty", zap.String("username", candidate), zap.Error(err))
		return nil
	}
	if taken {
		return nil
	}
	return &candidate
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(id)
	}
	return user, nil
}

// UpdateUserProfile validates the username format, then its availability
// excluding the caller, then writes the supplied fields.
func (s *userServiceImpl) UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return nil, domain.NewNoFieldsError()
	}

	if update.Username != nil {
		if verrs := domain.ValidateUsername(*update.Username); len(verrs) > 0 {
			return nil, verrs
		}
		taken, err := s.userRepo.IsUsernameTaken(ctx, *update.Username, id)
		if err != nil {
			return nil, domain.NewInternalError("Failed to check username", err)
		}
		if taken {
			return nil, domain.NewUsernameTakenError(*update.Username)
		}
	}

	user, err := s.userRepo.UpdateUserProfile(ctx, id, update)
	switch {
	case errors.Is(err, repository.ErrUsernameConflict):
		return nil, domain.NewUsernameTakenError(*update.Username)
	case errors.Is(err, repository.ErrNoFieldsToUpdate):
		return nil, domain.NewNoFieldsError()
	case err != nil:
		return nil, domain.NewInternalError("Failed to update profile", err)
	case user == nil:
		return nil, domain.NewUserNotFoundError(id)
	}

	logger.Get().Info("User profile updated", zap.String("userID", id))
	return user, nil
}

// IsUsernameAvailable checks the format before touching the store.
func (s *userServiceImpl) IsUsernameAvailable(ctx context.Context, candidate, excludingUserID string) (bool, error) {
	if verrs := domain.ValidateUsername(candidate); len(verrs) > 0 {
		return false, verrs
	}
	taken, err := s.userRepo.IsUsernameTaken(ctx, candidate, excludingUserID)
	if err != nil {
		return false, domain.NewInternalError("Failed to check username", err)
	}
	return !taken, nil
}

func (s *userServiceImpl) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("username")}
	}
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewFetchFailedError("Failed to fetch user", err)
	}
	profile := user.ToPublicProfile()
	if profile == nil {
		return nil, domain.NewUserNotFoundError(username)
	}
	return profile, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]domain.PublicProfile, error) {
	users, err := s.userRepo.ListUsersWithUsername(ctx, UserDirectoryLimit)
	if err != nil {
		return nil, domain.NewFetchFailedError("Failed to fetch users", err)
	}
	profiles := make([]domain.PublicProfile, 0, len(users))
	for i := range users {
		if p := users[i].ToPublicProfile(); p != nil {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}
