package ds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статусы коммерческого предложения
const (
	QuotationStatusDraft     = "draft"
	QuotationStatusSent      = "sent"
	QuotationStatusCancelled = "cancelled"
)

// Реквизиты клиента, встраиваются в таблицу quotations.
// Валидация полей намеренно не выполняется - менеджер заполняет что есть.
type QuotationClient struct {
	Name    string `gorm:"type:varchar(100)" json:"name"`
	Company string `gorm:"type:varchar(100)" json:"company"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	TaxID   string `gorm:"type:varchar(50)" json:"tax_id"`
	Email   string `gorm:"type:varchar(100)" json:"email"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
}

// Таблица коммерческих предложений
type Quotation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Number string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"` // QT-<год>-<номер>
	Status string    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	Client QuotationClient `gorm:"embedded;embeddedPrefix:client_" json:"client"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`

	// Итоговые суммы считает фронтенд, сервер сохраняет их как есть
	Subtotal   float64 `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	Discount   float64 `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Tax        float64 `gorm:"type:decimal(12,2);default:0" json:"tax"`
	GrandTotal float64 `gorm:"type:decimal(12,2);default:0" json:"grand_total"`

	DateIssued  string `gorm:"type:varchar(30)" json:"date_issued"`
	ValidUntil  string `gorm:"type:varchar(30)" json:"valid_until"`
	ReferenceNo string `gorm:"type:varchar(50)" json:"reference_no"`

	CreatedByID uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Позиция коммерческого предложения
type QuotationItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuotationID     uuid.UUID `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Description     string    `gorm:"type:varchar(500);not null" json:"description"`
	Quantity        float64   `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	UnitPrice       float64   `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	DiscountPercent float64   `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	Position        int       `gorm:"type:int;default:0" json:"position"`
}

func (i *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Счетчик номеров КП в пределах года. Инкремент выполняется в транзакции,
// чтобы параллельные создания не получили одинаковый номер.
type QuotationCounter struct {
	Year int `gorm:"primaryKey"`
	Seq  int `gorm:"type:int;not null;default:0"`
}
