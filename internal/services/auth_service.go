package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUsernameTaken      = errors.New("username already in use")
)

// AuthService authenticates staff members. Residents never authenticate
// themselves; staff sessions gate all write surfaces.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var staff models.StaffUser
	if err := s.db.Where("username = ?", req.Username).First(&staff).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	s.db.Model(&staff).Update("last_login", now)

	return s.generateTokenPair(&staff)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	// Rotate: the presented token is single-use.
	s.db.Model(&stored).Update("revoked", true)

	var staff models.StaffUser
	if err := s.db.First(&staff, "id = ?", stored.StaffID).Error; err != nil {
		return nil, fmt.Errorf("staff user not found: %w", err)
	}

	return s.generateTokenPair(&staff)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// EnsureAdmin creates the initial admin account when the staff table is
// empty. No-op when credentials are unset or any staff user exists.
func (s *AuthService) EnsureAdmin(username, password, name string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.StaffUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.StaffUser{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
		Name:     name,
		Role:     "admin",
	}
	return s.db.Create(&admin).Error
}

// CreateStaff registers a new staff account. Admin-only at the route level.
func (s *AuthService) CreateStaff(req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	var count int64
	if err := s.db.Model(&models.StaffUser{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	staff := models.StaffUser{
		ID:       uuid.New(),
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
		Role:     role,
	}
	if err := s.db.Create(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}

	return &dto.StaffResponse{
		ID:       staff.ID,
		Username: staff.Username,
		Name:     staff.Name,
		Role:     staff.Role,
	}, nil
}

func (s *AuthService) generateTokenPair(staff *models.StaffUser) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(staff)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(staff)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Staff: dto.StaffResponse{
			ID:       staff.ID,
			Username: staff.Username,
			Name:     staff.Name,
			Role:     staff.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(staff *models.StaffUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":  staff.ID.String(),
		"name": staff.Name,
		"role": staff.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(staff *models.StaffUser) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		StaffID:   staff.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
