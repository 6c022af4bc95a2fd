package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

const orderColumns = `
	id, number, customer_id, customer_kind, status, currency, base_shipping_fee_minor,
	subtotal_minor, discount_minor, shipping_fee_minor, total_minor, free_shipping, applied_promotions,
	tracking_code, carrier, shipment_fee_minor, shipment_notes, shipped_at,
	cancel_reason, created_by, version, created_at, updated_at`

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	return r.store.WithinTx(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		conn := r.store.conn(ctx)

		promotions, err := json.Marshal(nonNil(order.AppliedPromotions))
		if err != nil {
			return fmt.Errorf("encode applied promotions: %w", err)
		}
		shipment := shipmentColumns(order.Shipment)

		_, err = conn.ExecContext(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		`,
			order.ID, order.Number, order.CustomerID, string(order.CustomerKind), string(order.Status),
			order.Currency, order.BaseShippingFeeMinor,
			order.Pricing.SubtotalMinor, order.Pricing.DiscountMinor, order.Pricing.ShippingFeeMinor,
			order.Pricing.TotalMinor, order.Pricing.FreeShipping, promotions,
			shipment.trackingCode, shipment.carrier, shipment.feeMinor, shipment.notes, shipment.shippedAt,
			order.CancelReason, order.CreatedBy, order.Version, order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrOrderAlreadyExists
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for i, item := range order.Items {
			if _, err := conn.ExecContext(ctx, `
				INSERT INTO order_items (
					id, order_id, position, product_ref, category_ref, name_snapshot, sku_snapshot, qty, unit_price_minor
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			`,
				item.ID, order.ID, i, item.ProductRef, item.CategoryRef, item.NameSnapshot,
				item.SKUSnapshot, item.Qty, item.UnitPriceMinor,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		return appendTrail(ctx, conn, order.ID, order.ActorTrail, 0)
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	conn := r.store.conn(ctx)

	order, err := scanOrder(conn.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	if err := r.loadChildren(ctx, conn, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// List фильтрует по клиенту и, если задан, по статусу. NULL в $2 и $3 отключает фильтр и лимит.
func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	conn := r.store.conn(ctx)

	status := sql.NullString{String: string(filter.Status), Valid: filter.Status != ""}
	limit := sql.NullInt64{Int64: int64(filter.Limit), Valid: filter.Limit > 0}
	rows, err := conn.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, filter.CustomerID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	// Дочерние строки читаются после закрытия курсора: в транзакции соединение одно.
	for i := range orders {
		if err := r.loadChildren(ctx, conn, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// Save обновляет строку заказа при совпадении версии и дописывает новые записи журнала.
// Позиции после создания не меняются.
func (r *orderRepository) Save(ctx context.Context, order domain.Order, expectedVersion int64) error {
	return r.store.WithinTx(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		conn := r.store.conn(ctx)

		promotions, err := json.Marshal(nonNil(order.AppliedPromotions))
		if err != nil {
			return fmt.Errorf("encode applied promotions: %w", err)
		}
		shipment := shipmentColumns(order.Shipment)

		res, err := conn.ExecContext(ctx, `
			UPDATE orders
			SET status = $1,
			    subtotal_minor = $2,
			    discount_minor = $3,
			    shipping_fee_minor = $4,
			    total_minor = $5,
			    free_shipping = $6,
			    applied_promotions = $7,
			    tracking_code = $8,
			    carrier = $9,
			    shipment_fee_minor = $10,
			    shipment_notes = $11,
			    shipped_at = $12,
			    cancel_reason = $13,
			    version = $14 + 1,
			    updated_at = $15
			WHERE id = $16
			  AND version = $14
		`,
			string(order.Status),
			order.Pricing.SubtotalMinor, order.Pricing.DiscountMinor, order.Pricing.ShippingFeeMinor,
			order.Pricing.TotalMinor, order.Pricing.FreeShipping, promotions,
			shipment.trackingCode, shipment.carrier, shipment.feeMinor, shipment.notes, shipment.shippedAt,
			order.CancelReason, expectedVersion, order.UpdatedAt, order.ID,
		)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			exists, err := orderExists(ctx, conn, order.ID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrOrderNotFound
			}
			return domain.ErrOrderVersionConflict
		}

		stored, err := trailLength(ctx, conn, order.ID)
		if err != nil {
			return err
		}
		if len(order.ActorTrail) < stored {
			return domain.ErrActorTrailRewrite
		}
		return appendTrail(ctx, conn, order.ID, order.ActorTrail[stored:], stored)
	})
}

func (r *orderRepository) loadChildren(ctx context.Context, conn executor, order *domain.Order) error {
	items, err := loadItems(ctx, conn, order.ID)
	if err != nil {
		return err
	}
	order.Items = items

	trail, err := loadTrail(ctx, conn, order.ID)
	if err != nil {
		return err
	}
	order.ActorTrail = trail
	return nil
}

func loadItems(ctx context.Context, conn executor, orderID string) ([]domain.OrderItem, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, product_ref, category_ref, name_snapshot, sku_snapshot, qty, unit_price_minor
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.ProductRef, &item.CategoryRef, &item.NameSnapshot,
			&item.SKUSnapshot, &item.Qty, &item.UnitPriceMinor,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order        domain.Order
		customerKind string
		status       string
		promotions   []byte
		trackingCode sql.NullString
		carrier      sql.NullString
		shipmentFee  sql.NullInt64
		notes        sql.NullString
		shippedAt    sql.NullTime
	)
	if err := row.Scan(
		&order.ID, &order.Number, &order.CustomerID, &customerKind, &status, &order.Currency,
		&order.BaseShippingFeeMinor,
		&order.Pricing.SubtotalMinor, &order.Pricing.DiscountMinor, &order.Pricing.ShippingFeeMinor,
		&order.Pricing.TotalMinor, &order.Pricing.FreeShipping, &promotions,
		&trackingCode, &carrier, &shipmentFee, &notes, &shippedAt,
		&order.CancelReason, &order.CreatedBy, &order.Version, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}

	order.CustomerKind = domain.CustomerKind(customerKind)
	order.Status = domain.OrderStatus(status)
	if len(promotions) > 0 {
		if err := json.Unmarshal(promotions, &order.AppliedPromotions); err != nil {
			return domain.Order{}, fmt.Errorf("decode applied promotions: %w", err)
		}
	}
	if len(order.AppliedPromotions) == 0 {
		order.AppliedPromotions = nil
	}
	if trackingCode.Valid {
		order.Shipment = &domain.Shipment{
			TrackingCode:     trackingCode.String,
			Carrier:          carrier.String,
			ShippingFeeMinor: shipmentFee.Int64,
			Notes:            notes.String,
			ShippedAt:        shippedAt.Time.UTC(),
		}
	}
	order.CreatedAt = order.CreatedAt.UTC()
	order.UpdatedAt = order.UpdatedAt.UTC()
	return order, nil
}

type shipmentRow struct {
	trackingCode sql.NullString
	carrier      sql.NullString
	feeMinor     sql.NullInt64
	notes        sql.NullString
	shippedAt    sql.NullTime
}

func shipmentColumns(s *domain.Shipment) shipmentRow {
	if s == nil {
		return shipmentRow{}
	}
	return shipmentRow{
		trackingCode: sql.NullString{String: s.TrackingCode, Valid: true},
		carrier:      sql.NullString{String: s.Carrier, Valid: true},
		feeMinor:     sql.NullInt64{Int64: s.ShippingFeeMinor, Valid: true},
		notes:        sql.NullString{String: s.Notes, Valid: true},
		shippedAt:    sql.NullTime{Time: s.ShippedAt, Valid: !s.ShippedAt.IsZero()},
	}
}

func orderExists(ctx context.Context, conn executor, orderID string) (bool, error) {
	var exists bool
	if err := conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order exists: %w", err)
	}
	return exists, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
