package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"accounts-backend/application/dto"
	"accounts-backend/application/ports"
	"accounts-backend/domain/entities"
	apperrors "accounts-backend/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordPolicy is the configurable strength requirement for new passwords.
type PasswordPolicy struct {
	MinLength      int
	RequireLetter  bool
	RequireDigit   bool
	RequireSpecial bool
}

// DefaultPasswordPolicy mirrors the documented rule: at least 8 characters
// including letters, numbers and special characters.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8, RequireLetter: true, RequireDigit: true, RequireSpecial: true}
}

// Accepts reports whether the candidate password satisfies the policy.
func (p PasswordPolicy) Accepts(password string) bool {
	if len(password) < p.MinLength {
		return false
	}
	var letter, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if p.RequireLetter && !letter {
		return false
	}
	if p.RequireDigit && !digit {
		return false
	}
	if p.RequireSpecial && !special {
		return false
	}
	return true
}

// UserService implements account CRUD and the credential check backing login.
// The password policy is injected so deployments can tune it without a
// rebuild.
type UserService struct {
	users          ports.UserRepository
	hasher         ports.PasswordHasher
	passwordPolicy PasswordPolicy
}

// NewUserService creates a user service.
func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, passwordPolicy PasswordPolicy) *UserService {
	return &UserService{
		users:          users,
		hasher:         hasher,
		passwordPolicy: passwordPolicy,
	}
}

// GetAllUsers returns every registered user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing users")
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// GetUserByID returns one user or a not-found failure.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, strings.ToUpper(userID))
	if err != nil {
		return nil, apperrors.Wrap(err, "loading user")
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s", userID))
	}

	resp := toResponse(user)
	return &resp, nil
}

// AddUser registers a new account. UserId and Email must be unused by any
// active user.
func (s *UserService) AddUser(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	active, err := s.activeUsers(ctx)
	if err != nil {
		return nil, err
	}

	userID := strings.ToUpper(req.UserID)
	email := strings.ToLower(req.Email)

	for _, u := range active {
		if u.UserID == userID {
			return nil, apperrors.NewValidationError("UserId already exists. Try another one.")
		}
		if u.Email == email {
			return nil, apperrors.NewValidationError("E-mail already used by another active user. Try another one.")
		}
	}

	user, err := s.buildUser(req)
	if err != nil {
		return nil, err
	}

	if err := s.users.Add(ctx, user); err != nil {
		return nil, apperrors.Wrap(err, "adding user")
	}

	resp := toResponse(user)
	return &resp, nil
}

// UpdateUser replaces an existing account's data. CreatedAt is preserved.
func (s *UserService) UpdateUser(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	active, err := s.activeUsers(ctx)
	if err != nil {
		return nil, err
	}

	userID := strings.ToUpper(req.UserID)
	email := strings.ToLower(req.Email)

	var existing *entities.User
	for _, u := range active {
		if u.UserID == userID {
			existing = u
			continue
		}
		if u.Email == email {
			return nil, apperrors.NewValidationError("E-mail already used by another active user. Try another one.")
		}
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s", req.UserID))
	}

	user, err := s.buildUser(req)
	if err != nil {
		return nil, err
	}
	user.IsActive = req.IsActive
	user.IsAdmin = req.IsAdmin
	user.CreatedAt = existing.CreatedAt
	now := time.Now().UTC()
	user.UpdatedAt = &now

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.Wrap(err, "updating user")
	}

	resp := toResponse(user)
	return &resp, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	deleted, err := s.users.Delete(ctx, strings.ToUpper(userID))
	if err != nil {
		return apperrors.Wrap(err, "deleting user")
	}
	if !deleted {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s", userID))
	}
	return nil
}

// ValidateCredentials checks a user id / password pair and returns the user
// on success. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *UserService) ValidateCredentials(ctx context.Context, userID, password string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, strings.ToUpper(userID))
	if err != nil {
		return nil, apperrors.Wrap(err, "loading user")
	}

	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("User or password invalid.")
	}
	return user, nil
}

func (s *UserService) activeUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing users")
	}

	active := users[:0]
	for _, u := range users {
		if u.IsActive {
			active = append(active, u)
		}
	}
	return active, nil
}

// buildUser validates business rules and assembles the entity with a hashed
// password.
func (s *UserService) buildUser(req dto.UserRequest) (*entities.User, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, apperrors.NewBusinessError("Invalid email format.")
	}
	if !s.passwordPolicy.Accepts(req.Password) {
		return nil, apperrors.NewBusinessError("Password must be at least 8 characters and include letters, numbers and special characters.")
	}

	user := entities.NewUser(req.UserID, req.Name, req.Email)
	user.IsActive = req.IsActive
	user.IsAdmin = req.IsAdmin

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "hashing password")
	}
	user.PasswordHash = hash
	return user, nil
}

func toResponse(u *entities.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
