package ds

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Справочник статусов публикации (Draft / Published / In Review).
// Часть старых записей блога хранит не идентификатор, а legacy-код 1/2/3,
// соответствие кодов именам зашито в repository.
type Status struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (s *Status) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
