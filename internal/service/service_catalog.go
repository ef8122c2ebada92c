// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

type catalogService struct {
	productRepository store.ProductRepository
	categoryService   CategoryService
	images            imagePresenter
	logger            *logger.Logger
}

func NewCatalogService(
	productRepository store.ProductRepository,
	categoryService CategoryService,
	resizer adapter.ImageResizer,
	imageURLPrefix string,
	logger *logger.Logger,
) CatalogService {
	return &catalogService{
		productRepository: productRepository,
		categoryService:   categoryService,
		images:            imagePresenter{resizer: resizer, urlPrefix: imageURLPrefix},
		logger:            logger,
	}
}

// CountAll returns the number of products matching filter.
func (c *catalogService) CountAll(ctx context.Context, filter models.ProductFilter) (int, error) {
	query, err := c.query(ctx, "", filter)
	if err != nil {
		return 0, err
	}

	return c.productRepository.CountProducts(ctx, query)
}

// FetchPage returns page of the filtered catalog ordered by orderBy
// ("column [asc|desc]").
//
// A non-positive pageSize returns every product on a single page. A page
// beyond the last one is clamped to the last page, and to 1 when nothing
// matches.
func (c *catalogService) FetchPage(ctx context.Context, orderBy string, page, pageSize int, filter models.ProductFilter) (models.ProductPage, error) {
	log := logger.FromContext(ctx)

	query, err := c.query(ctx, orderBy, filter)
	if err != nil {
		return models.ProductPage{}, err
	}

	total, err := c.productRepository.CountProducts(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*catalogService.FetchPage").Msg("product count failed")
		return models.ProductPage{}, fmt.Errorf("products were not counted: %w", err)
	}

	if pageSize < 0 {
		pageSize = 0
	}
	result := models.ProductPage{
		Items:    []models.Product{},
		PageSize: pageSize,
		Total:    total,
	}
	result.PageCount = pageCount(total, pageSize)
	result.Page = clampPage(page, result.PageCount)
	result.RowNumber = (result.Page - 1) * pageSize

	if pageSize > 0 {
		query.Limit = uint64(pageSize)
		query.Offset = uint64(result.RowNumber)
	}

	items, err := c.productRepository.GetProducts(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*catalogService.FetchPage").Msg("product listing failed")
		return models.ProductPage{}, fmt.Errorf("products were not listed: %w", err)
	}
	if items != nil {
		result.Items = items
	}

	return result, nil
}

// FindProduct loads a product with its categories and features, and the
// detail image attached.
func (c *catalogService) FindProduct(ctx context.Context, productID int64) (models.Product, error) {
	if productID <= 0 {
		return models.Product{}, fmt.Errorf("%w: product id %d", ErrInvalidDataProvided, productID)
	}

	product, err := c.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}

	product.ImageURL = c.images.url(ctx, product.ImagePath, DetailImageSize)
	return product, nil
}

func (c *catalogService) AttachImages(ctx context.Context, products []models.Product, size ImageSize) {
	for i := range products {
		products[i].ImageURL = c.images.url(ctx, products[i].ImagePath, size)
	}
}

// query resolves filter into a store query. The category filter covers the
// whole subtree below the category.
func (c *catalogService) query(ctx context.Context, orderBy string, filter models.ProductFilter) (models.ProductQuery, error) {
	query := models.ProductQuery{
		OrderBy: orderBy,
		Search:  filter.Search,
	}

	if filter.CategoryID != 0 {
		ids, err := c.categoryService.Expand(ctx, filter.CategoryID)
		if err != nil {
			return models.ProductQuery{}, err
		}
		query.CategoryIDs = ids
	}

	return query, nil
}

func pageCount(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	count := total / pageSize
	if total%pageSize != 0 {
		count++
	}
	return count
}

func clampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}
