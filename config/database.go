package config

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var (
	DB   *sql.DB
	once sync.Once
	// initErr 记录首次初始化的结果，后续调用直接返回
	initErr error
)

// ConnectDB 连接数据库
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.Username
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = cfg.Hostname
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return sql.Open("mysql", dsn.FormatDSN())
}

// InitDB 初始化数据库连接并执行迁移，只执行一次
func InitDB(cfg DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	once.Do(func() {
		var db *sql.DB
		db, initErr = ConnectDB(cfg)
		if initErr != nil {
			initErr = fmt.Errorf("failed to connect to database: %w", initErr)
			return
		}
		if initErr = db.Ping(); initErr != nil {
			db.Close()
			initErr = fmt.Errorf("failed to ping database: %w", initErr)
			return
		}

		// 自动迁移数据库
		if initErr = AutoMigrate(db, logger); initErr != nil {
			db.Close()
			initErr = fmt.Errorf("failed to migrate database: %w", initErr)
			return
		}

		DB = db
		logger.Info("Database connected and migrated successfully", zap.String("host", cfg.Hostname), zap.String("db", cfg.DBName))
	})
	return DB, initErr
}

// AutoMigrate 创建迁移表并依次执行未执行过的迁移
func AutoMigrate(db *sql.DB, logger *zap.Logger) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range getMigrations() {
		if err := runMigrationIfNotExists(db, migration, logger); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Name, err)
		}
	}

	return nil
}

// Migration 迁移结构
type Migration struct {
	Name string
	SQL  string
}

// createMigrationsTable 创建迁移表
func createMigrationsTable(db *sql.DB) error {
	createSQL := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`
	_, err := db.Exec(createSQL)
	return err
}

// getMigrations 获取所有迁移
func getMigrations() []Migration {
	return []Migration{
		{
			Name: "001_create_users_table",
			SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
			`,
		},
		{
			Name: "002_create_prediction_records_table",
			SQL: `
			CREATE TABLE IF NOT EXISTS prediction_records (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				public_id VARCHAR(32) NOT NULL UNIQUE,
				district VARCHAR(64) NOT NULL DEFAULT '',
				season VARCHAR(64) NOT NULL DEFAULT '',
				predicted_crop VARCHAR(64) NOT NULL,
				vulnerability VARCHAR(32) NOT NULL,
				nitrogen DOUBLE NOT NULL,
				phosphorus DOUBLE NOT NULL,
				potassium DOUBLE NOT NULL,
				temperature DOUBLE NOT NULL,
				humidity DOUBLE NOT NULL,
				ph DOUBLE NOT NULL,
				rainfall DOUBLE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_district (district),
				INDEX idx_predicted_crop (predicted_crop),
				INDEX idx_created_at (created_at)
			)
			`,
		},
	}
}

// runMigrationIfNotExists 如果迁移不存在则运行
func runMigrationIfNotExists(db *sql.DB, migration Migration, logger *zap.Logger) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", migration.Name).Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Debug("Migration already executed, skipping", zap.String("migration", migration.Name))
		return nil
	}

	logger.Info("Running migration", zap.String("migration", migration.Name))
	if _, err := db.Exec(migration.SQL); err != nil {
		return err
	}

	// 记录迁移已执行
	_, err = db.Exec("INSERT INTO migrations (name) VALUES (?)", migration.Name)
	return err
}
