package main

import (
	"fmt"
	"log"

	"taiz-marketplace-server/config"
	"taiz-marketplace-server/database"
	"taiz-marketplace-server/models"
	"taiz-marketplace-server/utils"
)

// seedAdmin hashes ADMIN_CODE into the admins table on first start. Without
// it every privileged endpoint is unreachable, so an empty table plus an
// empty env is worth a loud warning.
func seedAdmin() error {
	var count int64
	if err := database.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	code := config.AppConfig.Admin.SeedCode
	if code == "" {
		log.Println("⚠️ No admins exist and ADMIN_CODE is not set; admin endpoints will reject everything")
		return nil
	}

	hash, err := utils.HashAdminCode(code)
	if err != nil {
		return fmt.Errorf("failed to hash admin code: %w", err)
	}

	if err := database.DB.Create(&models.Admin{Name: "root", CodeHash: hash}).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Println("✅ Seeded initial admin from ADMIN_CODE")
	return nil
}
