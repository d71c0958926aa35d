package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"earnings-analyzer/internal/model"
	"earnings-analyzer/internal/pkg/jwtutil"
	"earnings-analyzer/internal/repository"
)

type AuthService struct {
	analystRepo   *repository.AnalystRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token   string
	Analyst *model.Analyst
}

func NewAuthService(analystRepo *repository.AnalystRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		analystRepo:   analystRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	existingByName, err := s.analystRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.analystRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	analyst := &model.Analyst{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.analystRepo.Create(analyst); err != nil {
		return nil, err
	}
	return s.issue(analyst)
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	analyst, err := s.analystRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if analyst == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(analyst.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return s.issue(analyst)
}

func (s *AuthService) GetAnalystByID(id uint) (*model.Analyst, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.analystRepo.GetByID(id)
}

func (s *AuthService) issue(analyst *model.Analyst) (*AuthResult, error) {
	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, analyst.ID, analyst.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Analyst: analyst}, nil
}
