package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"wellness-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "wellness_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the single platform settings row exists.
func SeedDatabase() {
	var count int64
	DB.Model(&models.PlatformSetting{}).Count(&count)
	if count > 0 {
		return
	}

	setting := models.PlatformSetting{
		ShortName:    envOrDefault("PLATFORM_SHORT_NAME", "WELL"),
		SupportEmail: envOrDefault("SUPPORT_EMAIL", ""),
	}
	if err := DB.Create(&setting).Error; err != nil {
		log.Printf("warning: failed to seed platform settings: %v", err)
		return
	}
	log.Println("Platform settings seeded")
}

// AutoMigrateAll runs migrations in parent->child order. Shared with the
// test helpers so both schemas stay identical.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PlatformSetting{},
		&models.Company{},
		&models.Office{},
		&models.CompanyUser{},
		&models.Employee{},
		&models.Dependent{},
		&models.Booking{},
		&models.ApplicantDetail{},
	)
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := AutoMigrateAll(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
