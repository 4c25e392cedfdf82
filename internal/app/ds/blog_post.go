package ds

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Таблица постов блога.
// StatusID ссылается на справочник statuses, но у записей, перенесенных из
// старой версии сайта, заполнен только LegacyStatusCode (1/2/3).
type BlogPost struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug             string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Excerpt          string    `gorm:"type:varchar(500)" json:"excerpt"`
	Content          string    `gorm:"type:text" json:"content"`
	CoverImage       *string   `gorm:"type:varchar(255)" json:"cover_image,omitempty"`
	StatusID         string    `gorm:"type:varchar(36);index" json:"status_id"`
	LegacyStatusCode int       `gorm:"type:int;default:0" json:"legacy_status_code,omitempty"`
	AuthorID         uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug проверяет что slug состоит из латиницы/цифр и дефисов
func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}
