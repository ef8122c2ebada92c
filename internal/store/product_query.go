// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-storefront/models"
)

// productColumns lists the products table columns in table order. Only these
// may appear in an order clause.
var productColumns = []string{"id", "name", "description", "image_path", "price"}

const defaultProductOrder = "id ASC"

// parseProductOrder validates a "column [direction]" clause. An empty clause
// orders by the first table column ascending.
func parseProductOrder(orderBy string) (string, error) {
	tokens := strings.Fields(orderBy)
	if len(tokens) == 0 {
		return defaultProductOrder, nil
	}
	if len(tokens) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderColumn, orderBy)
	}

	column := strings.ToLower(tokens[0])
	if !slices.Contains(productColumns, column) {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderColumn, tokens[0])
	}

	direction := "ASC"
	if len(tokens) == 2 {
		direction = strings.ToUpper(tokens[1])
		if direction != "ASC" && direction != "DESC" {
			return "", fmt.Errorf("%w: %q", ErrInvalidOrderDirection, tokens[1])
		}
	}

	return column + " " + direction, nil
}

// filteredProducts is the select shared by the page and the count queries.
// It keeps the default Question placeholders so it can be nested.
func filteredProducts(query models.ProductQuery) (sq.SelectBuilder, error) {
	builder := sq.Select("id", "name", "description", "image_path", "price").From("products")

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if len(query.CategoryIDs) > 0 {
		subSQL, subArgs, err := sq.Select("product_id").
			From("product_categories_assoc").
			Where(sq.Eq{"category_id": query.CategoryIDs}).
			ToSql()
		if err != nil {
			return sq.SelectBuilder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		builder = builder.Where("id IN ("+subSQL+")", subArgs...)
	}

	return builder, nil
}

// buildProductsQuery returns one ordered page of the filtered catalog.
// A zero Limit returns every row.
func buildProductsQuery(ctx context.Context, query models.ProductQuery) (string, []any, error) {
	order, err := parseProductOrder(query.OrderBy)
	if err != nil {
		return "", nil, err
	}

	builder, err := filteredProducts(query)
	if err != nil {
		return "", nil, err
	}

	builder = builder.OrderBy(order)
	if query.Limit > 0 {
		builder = builder.Limit(query.Limit).Offset(query.Offset)
	}

	sqlStr, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}

// buildCountProductsQuery counts the rows the filtered select would return.
func buildCountProductsQuery(ctx context.Context, query models.ProductQuery) (string, []any, error) {
	builder, err := filteredProducts(query)
	if err != nil {
		return "", nil, err
	}

	sqlStr, args, err := sq.Select("COUNT(*)").
		FromSelect(builder, "t").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}

func buildProductsByIDsQuery(ctx context.Context, productIDs []int64) (string, []any, error) {
	sqlStr, args, err := sq.Select("id", "name", "description", "image_path", "price").
		From("products").
		Where(sq.Eq{"id": productIDs}).
		OrderBy(defaultProductOrder).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}

// buildSaveAddressQuery inserts a new address or updates the existing one
// owned by the same user. Both forms return the address id.
func buildSaveAddressQuery(ctx context.Context, address models.UserAddress) (string, []any, error) {
	var builder sq.Sqlizer
	if address.ID == 0 {
		builder = sq.Insert("user_addresses").
			Columns("user_id", "main", "street", "number", "complement", "neighborhood", "city", "state", "cep").
			Values(address.UserID, address.Main, address.Street, address.Number, address.Complement,
				address.Neighborhood, address.City, address.State, address.Cep).
			Suffix("RETURNING id").
			PlaceholderFormat(sq.Dollar)
	} else {
		builder = sq.Update("user_addresses").
			SetMap(map[string]any{
				"main":         address.Main,
				"street":       address.Street,
				"number":       address.Number,
				"complement":   address.Complement,
				"neighborhood": address.Neighborhood,
				"city":         address.City,
				"state":        address.State,
				"cep":          address.Cep,
			}).
			Where(sq.Eq{"id": address.ID, "user_id": address.UserID}).
			Suffix("RETURNING id").
			PlaceholderFormat(sq.Dollar)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlStr, args, nil
}
