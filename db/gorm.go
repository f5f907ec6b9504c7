package db

import (
	"fmt"
	"time"

	"github.com/TemaXo00/musium-web-application/config"
	appLogger "github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB coexists with the raw DB pool: GORM owns schema migration and the
// reference-data repositories, everything else runs parameterized SQL.
var GormDB *gorm.DB

// gormDSN matches mysqlDSN's clientFoundRows setting so both pools share
// the same RowsAffected semantics.
func gormDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// ConnectGormDB establishes the GORM connection.
func ConnectGormDB(cfg *config.Config) error {
	var err error
	GormDB, err = gorm.Open(mysql.Open(gormDSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Ownership is enforced in the repositories; entities survive the
		// deletion of their author on purpose.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Successfully connected to the database with GORM")
	return nil
}

// CloseGormDB closes the GORM connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for every domain model and seeds
// the genre reference table.
func Migrate() error {
	if GormDB == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	err := GormDB.AutoMigrate(
		&model.User{},
		&model.ProfileHistory{},
		&model.Genre{},
		&model.MusicEntity{},
		&model.Song{},
		&model.Album{},
		&model.EP{},
		&model.AlbumTrack{},
		&model.EPTrack{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	if err := seedGenres(); err != nil {
		return err
	}

	appLogger.Info("Database migration completed")
	return nil
}

var defaultGenres = []string{
	"Rock", "Pop", "Hip-Hop", "Jazz", "Classical", "Electronic",
	"Metal", "Folk", "R&B", "Indie",
}

func seedGenres() error {
	var count int64
	if err := GormDB.Model(&model.Genre{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if count > 0 {
		return nil
	}

	genres := make([]model.Genre, 0, len(defaultGenres))
	for _, name := range defaultGenres {
		genres = append(genres, model.Genre{Name: name})
	}
	if err := GormDB.Create(&genres).Error; err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	appLogger.Info("Seeded genre reference data", appLogger.Int("count", len(genres)))
	return nil
}
