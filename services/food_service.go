package services

import (
	"context"
	"errors"
	"strings"

	"caltrack/models"

	"gorm.io/gorm"
)

const maxSearchResults = 50

// FoodService reads the seeded catalog. The table is reference data; nothing
// here writes to it.
type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// Search does a case-insensitive substring match over catalog names,
// optionally narrowed by category.
func (s *FoodService) Search(ctx context.Context, query, category string, limit int) ([]models.FoodCatalogEntry, error) {
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	q := s.db.WithContext(ctx).Model(&models.FoodCatalogEntry{})
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if category != "" {
		q = q.Where("category = ?", strings.ToLower(category))
	}

	var entries []models.FoodCatalogEntry
	err := q.Order("name ASC").Limit(limit).Find(&entries).Error
	return entries, err
}

// Get resolves one entry by name, case-insensitive.
func (s *FoodService) Get(ctx context.Context, name string) (*models.FoodCatalogEntry, error) {
	var entry models.FoodCatalogEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// All returns the full catalog for in-memory matching by the classifiers.
func (s *FoodService) All(ctx context.Context) ([]models.FoodCatalogEntry, error) {
	var entries []models.FoodCatalogEntry
	err := s.db.WithContext(ctx).Order("name ASC").Find(&entries).Error
	return entries, err
}
