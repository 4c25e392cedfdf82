package ds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Таблица товаров (кондиционеры и сопутствующие услуги) - витрина сайта
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"` // split, cassette, standing, portable
	ShortDesc   string    `gorm:"type:varchar(300)" json:"short_desc"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	IsPublished bool      `gorm:"type:boolean;default:true;not null" json:"is_published"`
	IsDeleted   bool      `gorm:"type:boolean;default:false;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
