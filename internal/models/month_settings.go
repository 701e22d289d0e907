package models

// MonthSettings: ay bazlı bilgi amaçlı sayaçlar (tatil günleri vb.).
// Devam/devamsızlık hesabında kullanılmaz, sadece geri döndürülür.
type MonthSettings struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	Month     string `gorm:"size:2;not null;uniqueIndex:idx_month_settings_key" json:"month"` // "02"
	Year      string `gorm:"size:4;not null;uniqueIndex:idx_month_settings_key" json:"year"`  // "2026"
	Sundays   int    `gorm:"default:0" json:"sundays"`
	Saturdays int    `gorm:"default:0" json:"saturdays"`
}

func (MonthSettings) TableName() string { return "month_settings" }
