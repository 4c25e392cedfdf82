package ds

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Таблица пользователей админки
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login        string    `gorm:"type:varchar(50);unique;not null" json:"login"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(100)" json:"full_name"`
	Email        string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	Role         int       `gorm:"type:int;default:0;not null" json:"role"`
	SignatureURL *string   `gorm:"type:varchar(255)" json:"signature_url,omitempty"` // подпись для печатной формы КП
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
