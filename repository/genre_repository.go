package repository

import (
	"context"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"

	"gorm.io/gorm"
)

// GenreRepository serves the static genre reference data.
type GenreRepository interface {
	AllGenres(ctx context.Context) ([]model.Genre, error)
	GenreByName(ctx context.Context, name string) (*model.Genre, error)
}

type gormGenreRepository struct {
	db *gorm.DB
}

// NewGormGenreRepository creates the GORM-backed genre repository.
func NewGormGenreRepository(db *gorm.DB) GenreRepository {
	return &gormGenreRepository{db: db}
}

// AllGenres returns every genre ordered by name.
func (r *gormGenreRepository) AllGenres(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Order("name").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	return genres, nil
}

// GenreByName looks a genre up by its exact name.
func (r *gormGenreRepository) GenreByName(ctx context.Context, name string) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query genre %q: %w", name, err)
	}
	return &genre, nil
}
