package repository

import (
	"errors"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("blog post not found")

// Методы для работы с постами блога

// GetAllPosts возвращает посты, новые сверху.
// statusCode > 0 фильтрует по legacy-коду статуса через справочник.
func (r *Repository) GetAllPosts(statusCode int) ([]ds.BlogPost, error) {
	query := r.db.Order("created_at DESC")

	if statusCode > 0 {
		statusID := r.ResolveStatusID(statusCode)
		if statusID == "" {
			// Справочник не засеян - по такому статусу постов "нет"
			return []ds.BlogPost{}, nil
		}
		query = query.Where("status_id = ? OR legacy_status_code = ?", statusID, statusCode)
	}

	var posts []ds.BlogPost
	err := query.Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostBySlugOrID ищет пост по идентификатору, затем по slug
func (r *Repository) GetPostBySlugOrID(key string) (*ds.BlogPost, error) {
	var post ds.BlogPost

	if _, err := uuid.Parse(key); err == nil {
		err = r.db.First(&post, "id = ?", key).Error
		if err == nil {
			return &post, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := r.db.First(&post, "slug = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) CreatePost(post *ds.BlogPost) error {
	if post.StatusID == "" && post.LegacyStatusCode == 0 {
		// Новый пост всегда начинает с черновика
		post.StatusID = r.ResolveStatusID(1)
		post.LegacyStatusCode = 1
	}
	return r.db.Create(post).Error
}

func (r *Repository) UpdatePost(id uuid.UUID, fields map[string]interface{}) (*ds.BlogPost, error) {
	var post ds.BlogPost
	err := r.db.First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.Model(&post).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &post, nil
}

func (r *Repository) DeletePost(id uuid.UUID) (bool, error) {
	res := r.db.Delete(&ds.BlogPost{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetPostStatus переводит пост в статус по legacy-коду (1/2/3).
// Возвращает ErrPostNotFound если поста нет, и ошибку если код не резолвится.
func (r *Repository) SetPostStatus(id uuid.UUID, statusCode int) (*ds.BlogPost, error) {
	statusID := r.ResolveStatusID(statusCode)
	if statusID == "" {
		return nil, errors.New("unknown status code")
	}
	return r.UpdatePost(id, map[string]interface{}{
		"status_id":          statusID,
		"legacy_status_code": statusCode,
	})
}

// CountPostsByStatusCode считает посты в заданном legacy-статусе.
// Если строка справочника отсутствует, резолвер вернет "" и счетчик
// будет нулевым - это осознанно сохраненное поведение старого сайта.
func (r *Repository) CountPostsByStatusCode(code int) int {
	statusID := r.ResolveStatusID(code)
	if statusID == "" {
		return 0
	}

	var count int64
	err := r.db.Model(&ds.BlogPost{}).
		Where("status_id = ? OR legacy_status_code = ?", statusID, code).
		Count(&count).Error
	if err != nil {
		return 0
	}
	return int(count)
}
