package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

type categoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		DB:     db,
		logger: logger,
	}
}

// GetAllCategories returns the flat category list ordered by id.
func (c *categoryRepository) GetAllCategories(ctx context.Context) ([]models.ProductCategory, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, getAllCategories)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetAllCategories").Msg("failed to query categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.ProductCategory, 0, 32)
	for rows.Next() {
		var category models.ProductCategory
		if err := rows.Scan(&category.ID, &category.ParentID, &category.Name); err != nil {
			log.Err(err).Str("func", "*categoryRepository.GetAllCategories").Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetAllCategories").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}
