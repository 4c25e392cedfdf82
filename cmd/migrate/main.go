package main

import (
	"crypto/sha1"
	"encoding/hex"
	"log"
	"os"

	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/dsn"
	"aircond-backend/internal/app/role"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Status{},
		&ds.Quotation{},
		&ds.QuotationItem{},
		&ds.QuotationCounter{},
		&ds.BlogPost{},
		&ds.Product{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Справочник статусов блога
	for _, name := range []string{"Draft", "Published", "In Review"} {
		if err := db.Where(ds.Status{Name: name}).FirstOrCreate(&ds.Status{Name: name}).Error; err != nil {
			log.Fatalf("Failed to seed status %q: %v", name, err)
		}
	}

	// Первый суперадмин для входа в админку
	adminLogin := os.Getenv("ADMIN_LOGIN")
	if adminLogin == "" {
		adminLogin = "superadmin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	h := sha1.New()
	h.Write([]byte(adminPassword))

	var count int64
	db.Model(&ds.User{}).Where("login = ?", adminLogin).Count(&count)
	if count == 0 {
		admin := ds.User{
			Login:    adminLogin,
			Password: hex.EncodeToString(h.Sum(nil)),
			FullName: "Super Admin",
			Role:     int(role.SuperAdmin),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create superadmin: %v", err)
		}
		log.Printf("Superadmin %q created", adminLogin)
	}

	log.Println("Database migration completed successfully")
}
