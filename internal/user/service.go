package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dstasiak/habitflow/internal/auth"
	"github.com/dstasiak/habitflow/internal/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

const bcryptCost = 10

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	Me(ctx context.Context) (*UserResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func validateRegister(dto *RegisterDTO) error {
	dto.Username = strings.TrimSpace(dto.Username)
	dto.Email = strings.TrimSpace(dto.Email)

	if len(dto.Username) < 3 {
		return ErrValidation
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return ErrValidation
	}
	if len(dto.Password) < 6 {
		return ErrValidation
	}
	return nil
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if err := validateRegister(&dto); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up email")
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.repo.FindByUsername(dto.Username)
	if err != nil {
		log.WithError(err).Error("Failed to look up username")
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcryptCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(&u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.authResponse(&u)
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(strings.TrimSpace(dto.Email))
	if err != nil {
		log.WithError(err).Error("Failed to look up user for login")
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return s.authResponse(u)
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return &UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

func (s *userService) authResponse(u *User) (*AuthResponse, error) {
	token, err := auth.GenerateJWT(u.ID.String(), u.Username, auth.TokenDuration)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User:  UserResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	}, nil
}
