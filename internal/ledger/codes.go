package ledger

import (
	"fmt"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"gorm.io/gorm"
)

// GenerateCode mints the next order code for a category prefix by counting
// existing orders in that category: sequence = count + 1, zero-padded to 4
// digits (%04d widens naturally past 9999). The count is always derived
// from current ledger content, never from a stored counter, so codes stay
// correct as long as orders are never deleted and creation is serialized.
// CreateOrder holds the service mutex and runs this inside its own
// transaction.
func GenerateCode(tx *gorm.DB, prefix string) (string, error) {
	if !models.ValidPrefix(prefix) {
		return "", ErrInvalidCategory
	}
	var count int64
	if err := tx.Model(&models.Order{}).Where("prefix = ?", prefix).Count(&count).Error; err != nil {
		return "", storageErr("count orders", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
