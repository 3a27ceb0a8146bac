package database

import (
	"log"
	"strings"

	"github.com/Dominion-AI/suitsadmin/internal/config"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init: yerel gateway veritabanını açar. İş verisi burada tutulmaz;
// sadece oturum kaydı ve audit log saklanır. DSN "host=" veya
// "postgres://" ile başlıyorsa Postgres, aksi halde sqlite dosyasıdır.
func Init(cfg *config.Config) {
	var err error

	if strings.HasPrefix(cfg.DatabaseDSN, "host=") || strings.HasPrefix(cfg.DatabaseDSN, "postgres://") {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := DB.AutoMigrate(
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
