package repository

import (
	"errors"
	"fmt"
	"time"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Типизированные ошибки, чтобы обработчики отличали "не найдено"
// от реальной ошибки хранилища
var ErrQuotationNotFound = errors.New("quotation not found")

// Методы для работы с коммерческими предложениями

// GetAllQuotations возвращает все КП, новые сверху
func (r *Repository) GetAllQuotations() ([]ds.Quotation, error) {
	var quotations []ds.Quotation
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

// CreateQuotation сохраняет новое КП. Если номер не задан, он генерируется
// из счетчика за текущий год: QT-2025-004. Инкремент счетчика и вставка
// выполняются одной транзакцией, уникальный индекс на number - страховка.
func (r *Repository) CreateQuotation(q *ds.Quotation) error {
	if q.Status == "" {
		q.Status = ds.QuotationStatusDraft
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if q.Number == "" {
			number, err := nextQuotationNumber(tx, time.Now().Year())
			if err != nil {
				return err
			}
			q.Number = number
		}
		return tx.Create(q).Error
	})
}

// nextQuotationNumber атомарно увеличивает счетчик за год.
// UPDATE берет блокировку строки, поэтому параллельные создания
// выстраиваются в очередь и дубликат номера невозможен.
func nextQuotationNumber(tx *gorm.DB, year int) (string, error) {
	res := tx.Model(&ds.QuotationCounter{}).
		Where("year = ?", year).
		UpdateColumn("seq", gorm.Expr("seq + 1"))
	if res.Error != nil {
		return "", res.Error
	}

	if res.RowsAffected == 0 {
		// Первое КП в этом году - создаем счетчик
		err := tx.Create(&ds.QuotationCounter{Year: year, Seq: 1}).Error
		if err != nil {
			// Счетчик успел создать параллельный запрос - инкрементируем его
			res = tx.Model(&ds.QuotationCounter{}).
				Where("year = ?", year).
				UpdateColumn("seq", gorm.Expr("seq + 1"))
			if res.Error != nil {
				return "", res.Error
			}
		}
	}

	var counter ds.QuotationCounter
	if err := tx.First(&counter, "year = ?", year).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("QT-%d-%03d", year, counter.Seq), nil
}

// GetQuotationByIDOrNumber ищет КП по идентификатору, а если запись
// не нашлась - по человекочитаемому номеру. Для печатной формы
// подгружается создатель с подписью.
func (r *Repository) GetQuotationByIDOrNumber(key string) (*ds.Quotation, error) {
	var quotation ds.Quotation

	query := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("CreatedBy")

	if _, err := uuid.Parse(key); err == nil {
		err = query.First(&quotation, "id = ?", key).Error
		if err == nil {
			return &quotation, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// по id не нашли - пробуем как номер
	}

	err := query.First(&quotation, "number = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// UpdateQuotation применяет частичное обновление полей.
// items == nil означает "позиции не трогать", пустой слайс - очистить.
func (r *Repository) UpdateQuotation(id uuid.UUID, fields map[string]interface{}, items []ds.QuotationItem) (*ds.Quotation, error) {
	var quotation ds.Quotation
	err := r.db.First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&quotation).Updates(fields).Error; err != nil {
				return err
			}
		}
		if items != nil {
			// Позиции заменяются целиком
			if err := tx.Where("quotation_id = ?", id).Delete(&ds.QuotationItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = uuid.Nil
				items[i].QuotationID = id
				items[i].Position = i
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetQuotationByIDOrNumber(id.String())
}

// DeleteQuotation удаляет КП вместе с позициями.
// Возвращает false если записи с таким идентификатором не было.
func (r *Repository) DeleteQuotation(id uuid.UUID) (bool, error) {
	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&ds.QuotationItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&ds.Quotation{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// CountQuotationsByStatus считает КП в заданном статусе (для дашборда)
func (r *Repository) CountQuotationsByStatus(status string) int {
	var count int64
	err := r.db.Model(&ds.Quotation{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0
	}
	return int(count)
}
