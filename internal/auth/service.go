package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/config"
	"attendance-backend/internal/models"

	"gorm.io/gorm"
)

// Service: yönetici kaydı, girişi ve token üretimi
type Service struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, secret: cfg.JWTSecret, ttl: cfg.TokenTTL, now: time.Now}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail: email karşılaştırmaları her yerde aynı biçimde yapılır
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *Service) RegisterManager(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation(apperr.CodeMissingFields, "Please provide all fields")
	}

	db := s.db.WithContext(ctx)

	// Email herhangi bir rolde kullanılıyorsa reddet
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("email kontrolü", err)
	}
	if count > 0 {
		return nil, apperr.Validation(apperr.CodeEmailInUse, "Email already registered")
	}

	hash, err := HashNewPassword(in.Password)
	if err != nil {
		return nil, err
	}

	manager := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleManager,
	}
	if err := db.Create(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation(apperr.CodeEmailInUse, "Email already registered")
		}
		return nil, apperr.Internal("yönetici oluşturulamadı", err)
	}
	return &manager, nil
}

// Login: (email, role=manager) ile bulur, şifreyi doğrular ve token üretir
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperr.Validation(apperr.CodeMissingFields, "Please provide email and password")
	}

	var manager models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, models.RoleManager).
		First(&manager).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.Auth(apperr.CodeInvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return "", nil, apperr.Internal("yönetici okunamadı", err)
	}

	if !CheckPassword(manager.PasswordHash, password) {
		return "", nil, apperr.Auth(apperr.CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := GenerateToken(s.secret, s.ttl, &manager, s.now())
	if err != nil {
		return "", nil, apperr.Internal("token oluşturulamadı", err)
	}
	return token, &manager, nil
}

func (s *Service) Me(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("kullanıcı okunamadı", err)
	}
	return &user, nil
}
