package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

// productRepository serves catalog reads from the "products" table and its
// association tables.
type productRepository struct {
	*DB
	logger *logger.Logger
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		DB:     db,
		logger: logger,
	}
}

// CountProducts returns the number of products matching the query filters.
// Ordering and paging fields are ignored.
func (p *productRepository) CountProducts(ctx context.Context, query models.ProductQuery) (int, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := buildCountProductsQuery(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CountProducts").Msg("failed to create query")
		return 0, err
	}

	var total int
	if err := p.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*productRepository.CountProducts").Msg("failed to count products")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

// GetProducts returns one ordered page of products. Associations are not
// loaded.
func (p *productRepository) GetProducts(ctx context.Context, query models.ProductQuery) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := buildProductsQuery(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "*productRepository.GetProducts").
			Str("order_by", query.OrderBy).
			Msg("failed to create query")
		return nil, err
	}

	return p.queryProducts(ctx, "*productRepository.GetProducts", sqlStr, args...)
}

func (p *productRepository) GetProductsByIDs(ctx context.Context, productIDs []int64) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	if len(productIDs) == 0 {
		return []models.Product{}, nil
	}

	sqlStr, args, err := buildProductsByIDsQuery(ctx, productIDs)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.GetProductsByIDs").Msg("failed to create query")
		return nil, err
	}

	return p.queryProducts(ctx, "*productRepository.GetProductsByIDs", sqlStr, args...)
}

// GetProductByID loads a single product together with its category ids and
// features.
func (p *productRepository) GetProductByID(ctx context.Context, productID int64) (models.Product, error) {
	log := logger.FromContext(ctx)

	var product models.Product
	err := p.DB.QueryRowContext(ctx, getProductByID, productID).
		Scan(&product.ID, &product.Name, &product.Description, &product.ImagePath, &product.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*productRepository.GetProductByID").
			Int64("product_id", productID).
			Msg("failed to find product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if product.CategoryIDs, err = p.loadCategoryIDs(ctx, productID); err != nil {
		return models.Product{}, err
	}

	if product.Features, err = p.loadFeatures(ctx, productID); err != nil {
		return models.Product{}, err
	}

	product.FeatureIDs = make([]int64, 0, len(product.Features))
	for _, f := range product.Features {
		product.FeatureIDs = append(product.FeatureIDs, f.ID)
	}

	return product, nil
}

func (p *productRepository) loadCategoryIDs(ctx context.Context, productID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getProductCategoryIDs, productID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.loadCategoryIDs").Int64("product_id", productID).Msg("failed to query product categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 4)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

func (p *productRepository) loadFeatures(ctx context.Context, productID int64) ([]models.ProductFeature, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getProductFeatures, productID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.loadFeatures").Int64("product_id", productID).Msg("failed to query product features")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	features := make([]models.ProductFeature, 0, 4)
	for rows.Next() {
		var feature models.ProductFeature
		if err := rows.Scan(&feature.ID, &feature.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		features = append(features, feature)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return features, nil
}

func (p *productRepository) queryProducts(ctx context.Context, funcName, sqlStr string, args ...any) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute products query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, 16)
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.ImagePath, &product.Price); err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}
