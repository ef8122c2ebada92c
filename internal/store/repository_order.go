// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

type orderRepository struct {
	*DB
	logger *logger.Logger
}

func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveOrder writes the order header and all of its items in one transaction
// and returns the order id. Transient failures re-run the whole transaction.
//
// An order with a non-zero OrderID that still belongs to the user is
// rewritten in place: its header is updated and its items are replaced.
// Otherwise a new order is inserted.
func (o *orderRepository) SaveOrder(ctx context.Context, order models.Order) (int64, error) {
	var orderID int64
	err := o.DB.withRetry(ctx, func(ctx context.Context) error {
		id, err := o.saveOrderTx(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

func (o *orderRepository) saveOrderTx(ctx context.Context, order models.Order) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.SaveOrder").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	orderID, err := o.writeHeaderTx(ctx, tx, order)
	if err != nil {
		return 0, err
	}

	for i, item := range order.Items {
		result, err := tx.ExecContext(ctx, insertOrderItem, orderID, item.ProductID, item.Quantity)
		if err != nil {
			log.Err(err).
				Str("func", "*orderRepository.SaveOrder").
				Int64("order_id", orderID).
				Int("iteration", i).
				Msg("failed to insert order item")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if affected, err := result.RowsAffected(); err != nil || affected == 0 {
			log.Error().
				Str("func", "*orderRepository.SaveOrder").
				Int64("order_id", orderID).
				Int64("product_id", item.ProductID).
				Msg("order item was not saved")
			return 0, ErrOrderNotSaved
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*orderRepository.SaveOrder").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return orderID, nil
}

// writeHeaderTx updates the header of an existing order and clears its items,
// or inserts a new header when there is nothing to update.
func (o *orderRepository) writeHeaderTx(ctx context.Context, tx *sql.Tx, order models.Order) (int64, error) {
	log := logger.FromContext(ctx)

	if order.OrderID > 0 {
		result, err := tx.ExecContext(ctx, updateOrder, order.OrderID, order.UserID, order.ShippingAddressID, order.Datetime)
		if err != nil {
			log.Err(err).
				Str("func", "*orderRepository.SaveOrder").
				Int64("order_id", order.OrderID).
				Msg("failed to update order header")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected > 0 {
			if _, err := tx.ExecContext(ctx, deleteOrderItems, order.OrderID); err != nil {
				log.Err(err).
					Str("func", "*orderRepository.SaveOrder").
					Int64("order_id", order.OrderID).
					Msg("failed to delete order items")
				return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return order.OrderID, nil
		}

		log.Warn().
			Int64("order_id", order.OrderID).
			Int64("user_id", order.UserID).
			Msg("order to rewrite was not found, inserting a new one")
	}

	var orderID int64
	if err := tx.QueryRowContext(ctx, insertOrder, order.UserID, order.ShippingAddressID, order.Datetime).Scan(&orderID); err != nil {
		log.Err(err).
			Str("func", "*orderRepository.SaveOrder").
			Int64("user_id", order.UserID).
			Msg("failed to insert order header")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return orderID, nil
}
