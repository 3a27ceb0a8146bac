package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// ErrNoSession: login olmadan korunan bir işlem çağrıldı
var ErrNoSession = errors.New("aktif oturum yok")

// Store: tek aktif backend oturumunu tutar. Tarayıcıdaki
// localStorage'ın yerini alır; login'de oluşturulur, token refresh'te
// güncellenir, logout'ta veya kurtarılamayan 401'de yok edilir.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create: yeni oturum açar. Önceki oturum varsa silinir, aynı anda
// tek token çifti geçerlidir.
func (s *Store) Create(access, refresh, username string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return nil, err
	}

	sess := models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     username,
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Current() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess models.Session
	if err := s.db.Order("id DESC").First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &sess, nil
}

// UpdateAccess: refresh sonrası yeni access token'ı yazar
func (s *Store) UpdateAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess models.Session
	if err := s.db.Order("id DESC").First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSession
		}
		return err
	}

	now := time.Now()
	sess.AccessToken = access
	sess.RefreshedAt = &now
	return s.db.Save(&sess).Error
}

func (s *Store) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Where("1 = 1").Delete(&models.Session{}).Error
}

// AccessExpired: token'ın exp claim'ine bakar. İmza doğrulanmaz,
// token'ı backend imzalar ve backend doğrular; gateway sadece süresi
// geçmiş token'la boşuna istek atmamak için kontrol eder.
func AccessExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false // çözümlenemeyen token'ı backend'e bırak
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
