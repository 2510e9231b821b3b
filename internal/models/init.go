package models

import (
	"github.com/gestor-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperadmin creates the first superadmin account on an empty
// usuarios table. On a populated table it only makes sure the configured
// username keeps the superadmin flag.
func InitDefaultSuperadmin(username, email, password string) error {
	if username == "" {
		username = "admin"
	}
	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
	}

	var count int64
	DB.Model(&User{}).Count(&count)

	if count > 0 {
		if err := DB.Model(&User{}).Where("nombre_usuario = ?", username).Update("is_superadmin", true).Error; err != nil {
			logger.Warnw("ensure_default_superadmin_failed", "error", err)
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		FirstName:    "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		Status:       "Activo",
		IsSuperadmin: true,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_superadmin_created_with_default_password", "username", username)
		logger.Warnw("default_superadmin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_superadmin_created", "username", username, "password_hidden", true)
	}

	return nil
}
