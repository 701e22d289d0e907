package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/models"
)

// DaysInMonth: bir sonraki ayın 0. günü bu ayın son günüdür (artık yıl dahil)
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange: ayın ilk ve son günü, DateLayout formatında (uçlar dahil)
func MonthRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	return first.Format(models.DateLayout), last.Format(models.DateLayout)
}

// ParseMonthYear: "2" veya "02" ile "2026" kabul eder
func ParseMonthYear(monthStr, yearStr string) (int, time.Month, error) {
	monthStr = strings.TrimSpace(monthStr)
	yearStr = strings.TrimSpace(yearStr)
	if monthStr == "" || yearStr == "" {
		return 0, 0, apperr.Validation(apperr.CodeMissingParams, "Please provide month and year")
	}

	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, apperr.Validation(apperr.CodeInvalidParams, "Month must be between 1 and 12")
	}
	y, err := strconv.Atoi(yearStr)
	if err != nil || len(yearStr) != 4 || y < 1000 {
		return 0, 0, apperr.Validation(apperr.CodeInvalidParams, "Year must have 4 digits")
	}
	return y, time.Month(m), nil
}

// MonthLabel: "February 2026"
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// FormatWorkDuration: dakika cinsinden ortalamayı "8h 30m" biçimine çevirir.
// Saat ve dakika aşağı yuvarlanır; negatif değerler olduğu gibi geçer.
func FormatWorkDuration(avgMinutes float64) string {
	hours := math.Floor(avgMinutes / 60)
	mins := math.Floor(math.Mod(avgMinutes, 60))
	return fmt.Sprintf("%dh %dm", int(hours), int(mins))
}

// workedMinutes: çıkışı olmayan kayıt 0 katkı yapar
func workedMinutes(rec *models.Attendance) float64 {
	if rec.CheckOutTime == nil {
		return 0
	}
	return rec.CheckOutTime.Sub(rec.CheckInTime).Minutes()
}

// summarize: kullanıcı başına var/yok gün sayısı ve ortalama çalışma süresi.
// Ortalama, çıkış yapılan gün sayısına değil toplam var gün sayısına bölünür.
func summarize(users []models.User, records []models.Attendance, daysInMonth int) []HistoryRow {
	type acc struct {
		present int
		minutes float64
	}
	byUser := make(map[uint]*acc, len(users))
	for i := range records {
		rec := &records[i]
		a, ok := byUser[rec.UserID]
		if !ok {
			a = &acc{}
			byUser[rec.UserID] = a
		}
		a.present++
		a.minutes += workedMinutes(rec)
	}

	rows := make([]HistoryRow, 0, len(users))
	for _, u := range users {
		var a acc
		if found, ok := byUser[u.ID]; ok {
			a = *found
		}

		avg := 0.0
		if a.present > 0 {
			avg = a.minutes / float64(a.present)
		}

		rows = append(rows, HistoryRow{
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
			TotalAbsent:  daysInMonth - a.present,
			TotalPresent: a.present,
			AvgWorkHours: FormatWorkDuration(avg),
		})
	}
	return rows
}
