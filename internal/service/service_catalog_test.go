package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/mock"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCatalog(products *mockProductRepository, resizer *mock.MockImageResizer) CatalogService {
	categories := NewCategoryService(staticCategories(testCategories()...), logger.Nop())
	var r adapter.ImageResizer
	if resizer != nil {
		r = resizer
	}
	return NewCatalogService(products, categories, r, "/img/products", logger.Nop())
}

// pagedProducts serves total products named p1..pN and records the last
// listing query.
func pagedProducts(total int, last *models.ProductQuery) *mockProductRepository {
	return &mockProductRepository{
		countFn: func(context.Context, models.ProductQuery) (int, error) { return total, nil },
		getFn: func(_ context.Context, q models.ProductQuery) ([]models.Product, error) {
			*last = q
			end := total
			if q.Limit > 0 && int(q.Offset+q.Limit) < total {
				end = int(q.Offset + q.Limit)
			}
			var items []models.Product
			for i := int(q.Offset); i < end; i++ {
				items = append(items, models.Product{ID: int64(i + 1)})
			}
			return items, nil
		},
	}
}

// ── FetchPage ────────────────────────────────────────────────────────────────

func TestCatalogService_FetchPage_Pagination(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		page          int
		pageSize      int
		wantPage      int
		wantPageCount int
		wantRowNumber int
		wantItems     int
		wantLimit     uint64
		wantOffset    uint64
	}{
		{name: "first page", total: 25, page: 1, pageSize: 10, wantPage: 1, wantPageCount: 3, wantItems: 10, wantLimit: 10},
		{name: "last partial page", total: 25, page: 3, pageSize: 10, wantPage: 3, wantPageCount: 3, wantRowNumber: 20, wantItems: 5, wantLimit: 10, wantOffset: 20},
		{name: "page beyond the end is clamped", total: 25, page: 9, pageSize: 10, wantPage: 3, wantPageCount: 3, wantRowNumber: 20, wantItems: 5, wantLimit: 10, wantOffset: 20},
		{name: "page below one", total: 25, page: -2, pageSize: 10, wantPage: 1, wantPageCount: 3, wantItems: 10, wantLimit: 10},
		{name: "no items", total: 0, page: 5, pageSize: 10, wantPage: 1, wantPageCount: 0, wantItems: 0, wantLimit: 10},
		{name: "zero page size lists everything", total: 25, page: 2, pageSize: 0, wantPage: 1, wantPageCount: 1, wantItems: 25},
		{name: "negative page size lists everything", total: 7, page: 1, pageSize: -1, wantPage: 1, wantPageCount: 1, wantItems: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last models.ProductQuery
			svc := newTestCatalog(pagedProducts(tt.total, &last), nil)

			page, err := svc.FetchPage(context.Background(), "name asc", tt.page, tt.pageSize, models.ProductFilter{})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPageCount, page.PageCount)
			assert.Equal(t, tt.wantRowNumber, page.RowNumber)
			assert.Equal(t, tt.total, page.Total)
			assert.Len(t, page.Items, tt.wantItems)
			assert.NotNil(t, page.Items)
			assert.Equal(t, tt.wantLimit, last.Limit)
			assert.Equal(t, tt.wantOffset, last.Offset)
			assert.Equal(t, "name asc", last.OrderBy)
		})
	}
}

func TestCatalogService_FetchPage_Filters(t *testing.T) {
	var counted, listed models.ProductQuery
	products := &mockProductRepository{
		countFn: func(_ context.Context, q models.ProductQuery) (int, error) {
			counted = q
			return 1, nil
		},
		getFn: func(_ context.Context, q models.ProductQuery) ([]models.Product, error) {
			listed = q
			return []models.Product{{ID: 1}}, nil
		},
	}
	svc := newTestCatalog(products, nil)

	_, err := svc.FetchPage(context.Background(), "", 1, 10, models.ProductFilter{Search: "mug", CategoryID: 1})

	require.NoError(t, err)
	assert.Equal(t, "mug", listed.Search)
	assert.Equal(t, []int64{1, 2, 3, 4}, listed.CategoryIDs, "category filter covers the subtree")
	assert.Equal(t, listed.CategoryIDs, counted.CategoryIDs, "count and page use the same filter")
	assert.Equal(t, listed.Search, counted.Search)
}

func TestCatalogService_FetchPage_Errors(t *testing.T) {
	t.Run("count fails", func(t *testing.T) {
		svc := newTestCatalog(&mockProductRepository{
			countFn: func(context.Context, models.ProductQuery) (int, error) { return 0, errStorage },
		}, nil)

		_, err := svc.FetchPage(context.Background(), "", 1, 10, models.ProductFilter{})
		assert.ErrorIs(t, err, errStorage)
	})

	t.Run("invalid order", func(t *testing.T) {
		svc := newTestCatalog(&mockProductRepository{
			getFn: func(context.Context, models.ProductQuery) ([]models.Product, error) {
				return nil, store.ErrInvalidOrderColumn
			},
		}, nil)

		_, err := svc.FetchPage(context.Background(), "password asc", 1, 10, models.ProductFilter{})
		assert.ErrorIs(t, err, store.ErrInvalidOrderColumn)
	})
}

func TestCatalogService_CountAll(t *testing.T) {
	svc := newTestCatalog(&mockProductRepository{
		countFn: func(_ context.Context, q models.ProductQuery) (int, error) {
			assert.Equal(t, []int64{2, 4}, q.CategoryIDs)
			return 3, nil
		},
	}, nil)

	n, err := svc.CountAll(context.Background(), models.ProductFilter{CategoryID: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// ── FindProduct / images ─────────────────────────────────────────────────────

func TestCatalogService_FindProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	resizer := mock.NewMockImageResizer(ctrl)
	resizer.EXPECT().Resize(gomock.Any(), "lamp.jpg", 380, 380).Return("380x380-lamp.jpg", nil)

	svc := newTestCatalog(productCatalog(models.Product{ID: 7, Name: "Lamp", ImagePath: "lamp.jpg"}), resizer)

	product, err := svc.FindProduct(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Lamp", product.Name)
	assert.Equal(t, "/img/products/380x380-lamp.jpg", product.ImageURL)
}

func TestCatalogService_FindProduct_Errors(t *testing.T) {
	svc := newTestCatalog(productCatalog(), nil)

	_, err := svc.FindProduct(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.FindProduct(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestCatalogService_AttachImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	resizer := mock.NewMockImageResizer(ctrl)
	resizer.EXPECT().Resize(gomock.Any(), "mug.png", 300, 200).Return("300x200-mug.png", nil)
	resizer.EXPECT().Resize(gomock.Any(), "broken.png", 300, 200).Return("", errors.New("decode failed"))

	svc := newTestCatalog(productCatalog(), resizer)
	products := []models.Product{
		{ID: 1, ImagePath: "mug.png"},
		{ID: 2, ImagePath: "broken.png"},
		{ID: 3},
	}

	svc.AttachImages(context.Background(), products, ListingImageSize(models.ViewTypeIcon))

	assert.Equal(t, "/img/products/300x200-mug.png", products[0].ImageURL)
	assert.Equal(t, "/img/products/broken.png", products[1].ImageURL, "failed resize falls back to the original")
	assert.Empty(t, products[2].ImageURL)
}

func TestListingImageSize(t *testing.T) {
	assert.Equal(t, ImageSize{Width: 90, Height: 90}, ListingImageSize(models.ViewTypeList))
	assert.Equal(t, ImageSize{Width: 300, Height: 200}, ListingImageSize(models.ViewTypeIcon))
	assert.Equal(t, ListImageSize, ListingImageSize("unknown"))
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{name: "no products", total: 0, pageSize: 10, want: 0},
		{name: "unlimited page", total: 5, pageSize: 0, want: 1},
		{name: "exact pages", total: 20, pageSize: 10, want: 2},
		{name: "partial last page", total: 21, pageSize: 10, want: 3},
		{name: "page larger than total", total: 5, pageSize: 50, want: 1},
		{name: "huge page size", total: 5, pageSize: math.MaxInt, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageCount(tt.total, tt.pageSize))
		})
	}
}

func TestCatalogService_FetchPage_HugePageSize(t *testing.T) {
	var last models.ProductQuery
	svc := newTestCatalog(pagedProducts(5, &last), nil)

	page, err := svc.FetchPage(context.Background(), "", 1, math.MaxInt, models.ProductFilter{})

	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, 1, page.Page)
	assert.Zero(t, page.RowNumber)
	assert.Len(t, page.Items, 5)
}
