package models

import "time"

// Session: backend'den alınan access+refresh token çifti. Tarayıcı
// storage'ının yerini alan tek aktif oturum kaydı; login'de oluşur,
// refresh'te güncellenir, logout'ta silinir.
type Session struct {
	ID           uint   `gorm:"primaryKey"`
	AccessToken  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"type:text;not null"`
	Username     string `gorm:"size:100"`
	CreatedAt    time.Time
	RefreshedAt  *time.Time
}
