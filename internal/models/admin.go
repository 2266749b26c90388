// internal/models/admin.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type AdminUser struct {
	BaseModel
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name         string `json:"name" gorm:"size:255"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
}

func (u *AdminUser) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *AdminUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
