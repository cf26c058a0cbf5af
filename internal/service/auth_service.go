package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/pkg/bcrypt"
	"github.com/feastfinder/feastfinder-backend/pkg/email"
	jwtPkg "github.com/feastfinder/feastfinder-backend/pkg/jwt"
)

// UserStore is the persistence surface the identity service needs.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	GetAll() ([]models.User, error)
}

type AuthService struct {
	userRepo     UserStore
	emailService *email.EmailService
}

// NewAuthService wires the identity service. emailService may be nil,
// in which case no welcome email is sent.
func NewAuthService(userRepo UserStore, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Two concurrent registrations can both pass the EmailExists
		// check; the loser hits the unique constraint instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.emailService != nil {
		go s.emailService.SendWelcomeEmail(user.Email, user.Name)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	refreshToken, err := jwtPkg.GenerateRefreshToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh token generation failed: %w", err)
	}

	return &models.AuthResponse{
		Token:        token,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		User:         *user,
	}, nil
}
