package users

import (
	"context"
	"errors"
	"strings"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/auth"
	"attendance-backend/internal/models"

	"gorm.io/gorm"
)

// Service: yöneticinin çalışan (role=user) kayıtlarını yönettiği katman
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type EmployeeInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleUser).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Internal("çalışanlar listelenemedi", err)
	}
	return list, nil
}

func (s *Service) Add(ctx context.Context, in EmployeeInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = auth.NormalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation(apperr.CodeMissingFields, "Please provide name, email and password")
	}

	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashNewPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, mapWriteErr("çalışan oluşturulamadı", err)
	}
	return &user, nil
}

// Update: boş bırakılan alanlar değişmez; boş şifre eski hash'i korur
func (s *Service) Update(ctx context.Context, id uint, in EmployeeInput) (*models.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := auth.NormalizeEmail(in.Email); email != "" && email != user.Email {
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.Password != "" {
		hash, err := auth.HashNewPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, mapWriteErr("çalışan güncellenemedi", err)
	}
	return user, nil
}

// Delete: devam kayıtları geçmiş olarak kalır
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleUser).
		Delete(&models.User{})
	if res.Error != nil {
		return apperr.Internal("çalışan silinemedi", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (s *Service) get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleUser).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("çalışan okunamadı", err)
	}
	return &user, nil
}

// ensureEmailFree: email tüm rollerde tekildir, exceptID kendisini hariç tutar
func (s *Service) ensureEmailFree(ctx context.Context, email string, exceptID uint) error {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperr.Internal("email kontrolü", err)
	}
	if count > 0 {
		return apperr.Validation(apperr.CodeEmailInUse, "Email already registered")
	}
	return nil
}

func mapWriteErr(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Validation(apperr.CodeEmailInUse, "Email already registered")
	}
	return apperr.Internal(op, err)
}
