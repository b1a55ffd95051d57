package repository

import (
	"context"
	"errors"
	"strconv"

	"thaichat/internal/models"

	"gorm.io/gorm"
)

// ThemeRepository defines the interface for theme catalog operations.
// The catalog is static; only the active pointer mutates.
type ThemeRepository interface {
	List(ctx context.Context) ([]models.Theme, error)
	// Active returns the selected theme, falling back to the first catalog
	// entry when the pointer does not resolve.
	Active(ctx context.Context) (*models.Theme, error)
	// Find resolves by id first, then by name.
	Find(ctx context.Context, id int64, name string) (*models.Theme, error)
	SetActive(ctx context.Context, id int64) error
}

// themeRef picks the identifier used in not-found messages.
func themeRef(id int64, name string) interface{} {
	if name != "" {
		return name
	}
	return id
}

// gormThemeRepository implements ThemeRepository over a gorm database,
// keeping the active pointer in the settings table.
type gormThemeRepository struct {
	db *gorm.DB
}

// NewGormThemeRepository creates a database-backed theme repository
func NewGormThemeRepository(db *gorm.DB) ThemeRepository {
	return &gormThemeRepository{db: db}
}

func (r *gormThemeRepository) List(ctx context.Context) ([]models.Theme, error) {
	var themes []models.Theme
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&themes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return themes, nil
}

func (r *gormThemeRepository) Active(ctx context.Context) (*models.Theme, error) {
	var setting models.Setting
	activeID := int64(0)
	err := r.db.WithContext(ctx).First(&setting, "key = ?", models.ActiveThemeKey).Error
	if err == nil {
		activeID, _ = strconv.ParseInt(setting.Value, 10, 64)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	var theme models.Theme
	err = r.db.WithContext(ctx).First(&theme, activeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Dangling pointer: fall back to the first catalog entry.
		err = r.db.WithContext(ctx).Order("id ASC").First(&theme).Error
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &theme, nil
}

func (r *gormThemeRepository) Find(ctx context.Context, id int64, name string) (*models.Theme, error) {
	var theme models.Theme
	err := r.db.WithContext(ctx).First(&theme, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && name != "" {
		err = r.db.WithContext(ctx).First(&theme, "name = ?", name).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Theme", themeRef(id, name))
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &theme, nil
}

func (r *gormThemeRepository) SetActive(ctx context.Context, id int64) error {
	var theme models.Theme
	if err := r.db.WithContext(ctx).First(&theme, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Theme", id)
		}
		return models.NewInternalError(err)
	}

	setting := models.Setting{Key: models.ActiveThemeKey, Value: strconv.FormatInt(id, 10)}
	if err := r.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
