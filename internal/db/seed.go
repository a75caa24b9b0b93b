package db

import (
	"errors"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the operator roles and one dev user per role with fixed
// credentials. This only ever runs behind DB_SEED in development.
func Seed(db *gorm.DB) error {
	seedUsers := []struct {
		role     string
		desc     string
		username string
		password string
	}{
		{"admin", "Full access", "admin", "admin123"},
		{"sales", "Order entry", "sales", "sales123"},
		{"production", "Material and status tracking", "production", "prod123"},
		{"manager", "Reporting", "manager", "mgr123"},
	}
	for _, su := range seedUsers {
		var role models.Role
		err := db.Where("name = ?", su.role).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.Role{Name: su.role, Description: su.desc}
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", su.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Username: su.username, Password: string(hash), RoleID: role.ID}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
