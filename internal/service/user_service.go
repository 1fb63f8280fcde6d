package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login verifies the password and returns the user's token, issuing
	// one on first login.
	Login(ctx context.Context, username, password string) (*model.User, *model.Token, error)
	Logout(ctx context.Context, userID uint64) error
	// UpdateProfile mutates username, email and avatar. IsSeller is not
	// settable through the profile.
	UpdateProfile(ctx context.Context, user *model.User, username, email string, avatarURL *string) (*model.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
}

func NewUserService(users repository.UserRepository, tokens repository.TokenRepository) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || len(username) > 150 {
		return nil, errors.New("invalid username")
	}
	if email == "" {
		return nil, errors.New("invalid email")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*model.User, *model.Token, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	token, err := s.tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *userService) Logout(ctx context.Context, userID uint64) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, user *model.User, username, email string, avatarURL *string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || len(username) > 150 {
		return nil, errors.New("invalid username")
	}
	if email == "" {
		return nil, errors.New("invalid email")
	}
	if username != user.Username {
		existing, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrUsernameTaken
		}
	}

	user.Username = username
	user.Email = email
	user.AvatarURL = avatarURL
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
