package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"bloglist/internal/models"
	"bloglist/internal/repository"
)

const minCredentialLen = 3

type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

// CreateUser validates, hashes the password and stores the account.
func (s *UserService) CreateUser(ctx context.Context, in NewUser) (models.User, error) {
	if utf8.RuneCountInString(in.Password) < minCredentialLen {
		return models.User{}, validationf("password must be %d characters or longer", minCredentialLen)
	}
	if utf8.RuneCountInString(in.Username) < minCredentialLen {
		return models.User{}, validationf("username must be %d characters or longer", minCredentialLen)
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.User{}, validationf("name is required")
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, validationf("username must be unique")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, validationf("%v", err)
	}

	u := models.User{Username: in.Username, Name: in.Name, PasswordHash: hash}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return models.User{}, validationf("username must be unique")
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	id, err := parseID(id)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, notFound("user")
	}
	return *u, nil
}
