package repository

import (
	"strings"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Соответствие legacy-кодов статусов их именам в справочнике.
// Коды 1/2/3 остались от старой версии сайта и до сих пор встречаются
// в перенесенных записях блога.
var statusCodeNames = map[int]string{
	1: "Draft",
	2: "Published",
	3: "In Review",
}

// ResolveStatusID приводит любое представление статуса к идентификатору
// записи справочника. Принимает: uuid-строку (возвращается как есть),
// саму запись Status, legacy-код 1-3 или имя статуса без учета регистра.
// Для нераспознанного входа или незасеянного справочника возвращает "" -
// вызывающий код трактует это как "статус неизвестен", а не как ошибку.
func (r *Repository) ResolveStatusID(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case uuid.UUID:
		if s == uuid.Nil {
			return ""
		}
		return s.String()
	case ds.Status:
		if s.ID == uuid.Nil {
			return ""
		}
		return s.ID.String()
	case *ds.Status:
		if s == nil || s.ID == uuid.Nil {
			return ""
		}
		return s.ID.String()
	case int:
		return r.statusIDByCode(s)
	case int64:
		return r.statusIDByCode(int(s))
	case float64:
		// JSON-числа декодируются в float64
		if s != float64(int(s)) {
			return ""
		}
		return r.statusIDByCode(int(s))
	case string:
		if s == "" {
			return ""
		}
		// uuid-строки пропускаем без изменений
		if _, err := uuid.Parse(s); err == nil {
			return s
		}
		for _, name := range statusCodeNames {
			if strings.EqualFold(name, s) {
				return r.statusIDByName(name)
			}
		}
		return ""
	default:
		return ""
	}
}

// StatusNumeric обратное преобразование: идентификатор или запись справочника
// в legacy-код. 0 означает что статус не распознан.
func (r *Repository) StatusNumeric(v interface{}) int {
	var name string

	switch s := v.(type) {
	case nil:
		return 0
	case ds.Status:
		name = s.Name
	case *ds.Status:
		if s == nil {
			return 0
		}
		name = s.Name
	case uuid.UUID:
		name = r.statusNameByID(s.String())
	case string:
		if s == "" {
			return 0
		}
		if _, err := uuid.Parse(s); err == nil {
			name = r.statusNameByID(s)
		} else {
			name = s
		}
	default:
		return 0
	}

	for code, n := range statusCodeNames {
		if strings.EqualFold(n, name) {
			return code
		}
	}
	return 0
}

func (r *Repository) statusIDByCode(code int) string {
	name, ok := statusCodeNames[code]
	if !ok {
		return ""
	}
	return r.statusIDByName(name)
}

func (r *Repository) statusIDByName(name string) string {
	var status ds.Status
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&status).Error
	if err != nil {
		// Строка справочника не засеяна - все счетчики по этому статусу
		// молча станут нулевыми, поэтому оставляем след в логе
		logrus.Debugf("status %q is not seeded: %v", name, err)
		return ""
	}
	return status.ID.String()
}

func (r *Repository) statusNameByID(id string) string {
	var status ds.Status
	err := r.db.First(&status, "id = ?", id).Error
	if err != nil {
		return ""
	}
	return status.Name
}

// SeedStatuses создает строки справочника если их еще нет
func (r *Repository) SeedStatuses() error {
	for _, name := range statusCodeNames {
		var status ds.Status
		err := r.db.Where("name = ?", name).FirstOrCreate(&status, ds.Status{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
