package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/auth"
	"attendance-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Service: giriş/çıkış durum makinesi ve raporlar.
// Günlük tekillik (user_id, date) veritabanı indeksine dayanır.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Service)

// WithClock: testlerde sabit saat vermek için
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Credentials: email verilirse doğrudan aranır, verilmezse tüm çalışanlar taranır
type Credentials struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

type CheckInResult struct {
	Name        string    `json:"name"`
	CheckInTime time.Time `json:"checkInTime"`
}

type CheckOutResult struct {
	Name         string    `json:"name"`
	CheckInTime  time.Time `json:"checkInTime"`
	CheckOutTime time.Time `json:"checkOutTime"`
}

type DashboardRow struct {
	UserID   uint       `json:"userId"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
	Status   string     `json:"status"`
}

type DashboardReport struct {
	Date       string         `json:"date"`
	Day        string         `json:"day"`
	Attendance []DashboardRow `json:"attendance"`
}

type HistoryRow struct {
	UserID       uint   `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TotalAbsent  int    `json:"totalAbsent"`
	TotalPresent int    `json:"totalPresent"`
	AvgWorkHours string `json:"avgWorkHours"`
}

type HistoryReport struct {
	Month     string       `json:"month"`
	TotalDays int          `json:"totalDays"`
	History   []HistoryRow `json:"history"`

	// dosya adları için "2026-02"
	Period string `json:"-"`
}

func (s *Service) today() (time.Time, string) {
	now := s.now()
	return now, now.Format(models.DateLayout)
}

// resolveUser: şifreyi role=user kullanıcılardan biriyle eşleştirir
func (s *Service) resolveUser(ctx context.Context, cred Credentials) (*models.User, error) {
	if cred.Password == "" {
		return nil, apperr.Validation(apperr.CodeMissingPassword, "Please provide password")
	}
	invalid := apperr.Auth(apperr.CodeInvalidCredentials, "Invalid password")
	db := s.db.WithContext(ctx)

	if email := auth.NormalizeEmail(cred.Email); email != "" {
		var user models.User
		err := db.Where("email = ? AND role = ?", email, models.RoleUser).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		if err != nil {
			return nil, apperr.Internal("kullanıcı okunamadı", err)
		}
		if !auth.CheckPassword(user.PasswordHash, cred.Password) {
			return nil, invalid
		}
		return &user, nil
	}

	// TODO: kiosk istemcisi email göndermeye başlayınca bu tarama kaldırılacak
	var candidates []models.User
	if err := db.Where("role = ?", models.RoleUser).Order("id ASC").Find(&candidates).Error; err != nil {
		return nil, apperr.Internal("kullanıcılar okunamadı", err)
	}
	for i := range candidates {
		if auth.CheckPassword(candidates[i].PasswordHash, cred.Password) {
			return &candidates[i], nil
		}
	}
	return nil, invalid
}

// CheckIn: bugün için kayıt yoksa oluşturur. Ekleme tek sorguda yapılır
// (ON CONFLICT DO NOTHING), eşzamanlı isteklerden sadece biri başarılı olur.
func (s *Service) CheckIn(ctx context.Context, cred Credentials) (*CheckInResult, error) {
	user, err := s.resolveUser(ctx, cred)
	if err != nil {
		return nil, err
	}

	now, today := s.today()
	rec := models.Attendance{
		UserID:      user.ID,
		Date:        today,
		CheckInTime: now,
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, alreadyCheckedIn(user)
		}
		return nil, apperr.Internal("giriş kaydedilemedi", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, alreadyCheckedIn(user)
	}

	return &CheckInResult{Name: user.Name, CheckInTime: rec.CheckInTime}, nil
}

func alreadyCheckedIn(u *models.User) error {
	return apperr.Conflict(apperr.CodeAlreadyCheckedIn,
		fmt.Sprintf("%s, you are already checked in for today", u.Name))
}

func alreadyCheckedOut(u *models.User) error {
	return apperr.Conflict(apperr.CodeAlreadyCheckedOut,
		fmt.Sprintf("%s, you have already checked out for today", u.Name))
}

// CheckOut: NoRecord -> hata, CheckedIn -> CheckedOut, CheckedOut -> hata
func (s *Service) CheckOut(ctx context.Context, cred Credentials) (*CheckOutResult, error) {
	user, err := s.resolveUser(ctx, cred)
	if err != nil {
		return nil, err
	}

	now, today := s.today()
	db := s.db.WithContext(ctx)

	var rec models.Attendance
	err = db.Where("user_id = ? AND date = ?", user.ID, today).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Conflict(apperr.CodeNotCheckedIn,
			fmt.Sprintf("%s, you need to check in first", user.Name))
	}
	if err != nil {
		return nil, apperr.Internal("giriş kaydı okunamadı", err)
	}
	if rec.CheckedOut() {
		return nil, alreadyCheckedOut(user)
	}

	// check_out_time IS NULL şartı iki eşzamanlı çıkışın ikisinin de yazmasını engeller
	res := db.Model(&models.Attendance{}).
		Where("id = ? AND check_out_time IS NULL", rec.ID).
		Update("check_out_time", now)
	if res.Error != nil {
		return nil, apperr.Internal("çıkış kaydedilemedi", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, alreadyCheckedOut(user)
	}

	return &CheckOutResult{
		Name:         user.Name,
		CheckInTime:  rec.CheckInTime,
		CheckOutTime: now,
	}, nil
}

func (s *Service) listEmployees(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleUser).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Internal("çalışanlar okunamadı", err)
	}
	return list, nil
}

// Dashboard: bugünün durumu. Kayıt varsa (çıkış yapılmış olsun olmasın) Present.
func (s *Service) Dashboard(ctx context.Context) (*DashboardReport, error) {
	now, today := s.today()

	employees, err := s.listEmployees(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.Attendance
	if err := s.db.WithContext(ctx).Where("date = ?", today).Find(&records).Error; err != nil {
		return nil, apperr.Internal("bugünün kayıtları okunamadı", err)
	}
	byUser := make(map[uint]*models.Attendance, len(records))
	for i := range records {
		byUser[records[i].UserID] = &records[i]
	}

	rows := make([]DashboardRow, 0, len(employees))
	for _, u := range employees {
		row := DashboardRow{UserID: u.ID, Name: u.Name, Email: u.Email, Status: StatusAbsent}
		if rec, ok := byUser[u.ID]; ok {
			checkIn := rec.CheckInTime
			row.CheckIn = &checkIn
			row.CheckOut = rec.CheckOutTime
			row.Status = StatusPresent
		}
		rows = append(rows, row)
	}

	return &DashboardReport{
		Date:       today,
		Day:        now.Weekday().String(),
		Attendance: rows,
	}, nil
}

// History: aylık özet. Tarih aralığı string karşılaştırmasıyla çekilir.
func (s *Service) History(ctx context.Context, monthStr, yearStr string) (*HistoryReport, error) {
	year, month, err := ParseMonthYear(monthStr, yearStr)
	if err != nil {
		return nil, err
	}

	employees, err := s.listEmployees(ctx)
	if err != nil {
		return nil, err
	}

	days := DaysInMonth(year, month)
	start, end := MonthRange(year, month)

	var records []models.Attendance
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&records).Error; err != nil {
		return nil, apperr.Internal("aylık kayıtlar okunamadı", err)
	}

	return &HistoryReport{
		Month:     MonthLabel(year, month),
		TotalDays: days,
		History:   summarize(employees, records, days),
		Period:    strings.TrimSuffix(start, "-01"),
	}, nil
}
