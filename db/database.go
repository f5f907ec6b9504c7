package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/TemaXo00/musium-web-application/config"
	"github.com/TemaXo00/musium-web-application/logger"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// mysqlDSN builds the driver DSN. clientFoundRows makes RowsAffected
// count matched rows instead of changed rows; the status updates rely on
// that to tell a missing row apart from a row already in the target
// state.
func mysqlDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// ConnectDB establishes the raw database/sql connection used by the
// repositories.
func ConnectDB(cfg *config.Config) error {
	var err error
	DB, err = sql.Open("mysql", mysqlDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxIdleConns(10)
	DB.SetMaxOpenConns(100)
	DB.SetConnMaxLifetime(time.Hour)

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to the database")
	return nil
}

// CloseDB closes the raw connection pool.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
