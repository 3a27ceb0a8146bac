package audit

import (
	"fmt"

	"github.com/Dominion-AI/suitsadmin/internal/database"
	"github.com/Dominion-AI/suitsadmin/internal/models"
)

type LogOptions struct {
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
}

// WriteLog: personel işlemini yerel audit tablosuna yazar. Audit
// yazılamaması ana işlemi engellemez, çağıran taraf sadece loglar.
func WriteLog(opts LogOptions) error {
	log := models.AuditLog{
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
