package repository

import (
	"errors"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// Методы для работы с каталогом товаров

// GetAllProducts возвращает неудаленные товары.
// search фильтрует по названию, publishedOnly скрывает снятые с витрины.
func (r *Repository) GetAllProducts(search string, publishedOnly bool) ([]ds.Product, error) {
	query := r.db.Where("is_deleted = ?", false)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var products []ds.Product
	err := query.Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByIDOrSlug ищет товар по идентификатору, затем по slug
func (r *Repository) GetProductByIDOrSlug(key string) (*ds.Product, error) {
	var product ds.Product

	if _, err := uuid.Parse(key); err == nil {
		err = r.db.First(&product, "id = ? AND is_deleted = ?", key, false).Error
		if err == nil {
			return &product, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := r.db.First(&product, "slug = ? AND is_deleted = ?", key, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) CreateProduct(product *ds.Product) error {
	return r.db.Create(product).Error
}

func (r *Repository) UpdateProduct(id uuid.UUID, fields map[string]interface{}) (*ds.Product, error) {
	var product ds.Product
	err := r.db.First(&product, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.Model(&product).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &product, nil
}

// DeleteProduct выполняет логическое удаление
func (r *Repository) DeleteProduct(id uuid.UUID) (bool, error) {
	res := r.db.Model(&ds.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) UpdateProductImage(id uuid.UUID, imageURL string) error {
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Update("image_url", imageURL).Error
}

func (r *Repository) DeleteProductImage(id uuid.UUID) error {
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Update("image_url", nil).Error
}

// CountProducts считает неудаленные товары (для дашборда)
func (r *Repository) CountProducts() int {
	var count int64
	err := r.db.Model(&ds.Product{}).Where("is_deleted = ?", false).Count(&count).Error
	if err != nil {
		return 0
	}
	return int(count)
}
