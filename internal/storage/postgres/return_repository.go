package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

const returnColumns = `id, number, order_id, reason, notes, processed_by, processed_role, restock_warnings, created_at`

type returnRepository struct {
	store *Store
}

// NewReturnRepository создаёт PostgreSQL-хранилище возвратов.
func NewReturnRepository(store *Store) domain.ReturnRepository {
	return &returnRepository{store: store}
}

func (r *returnRepository) Create(ctx context.Context, ret domain.Return) error {
	return r.store.WithinTx(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		conn := r.store.conn(ctx)

		warnings, err := json.Marshal(nonNil(ret.RestockWarnings))
		if err != nil {
			return fmt.Errorf("encode restock warnings: %w", err)
		}
		if _, err := conn.ExecContext(ctx, `
			INSERT INTO order_returns (`+returnColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			ret.ID, ret.Number, ret.OrderID, string(ret.Reason), ret.Notes,
			ret.ProcessedBy, string(ret.ProcessedRole), warnings, ret.CreatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrReturnAlreadyExists
			}
			return fmt.Errorf("insert return: %w", err)
		}

		for i, line := range ret.Lines {
			if _, err := conn.ExecContext(ctx, `
				INSERT INTO order_return_lines (return_id, position, item_id, product_ref, qty, condition, restock)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, ret.ID, i, line.ItemID, line.ProductRef, line.Qty, string(line.Condition), line.Restock); err != nil {
				return fmt.Errorf("insert return line: %w", err)
			}
		}
		return nil
	})
}

func (r *returnRepository) Get(ctx context.Context, id string) (domain.Return, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	conn := r.store.conn(ctx)

	ret, err := scanReturn(conn.QueryRowContext(ctx, `SELECT `+returnColumns+` FROM order_returns WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Return{}, domain.ErrReturnNotFound
		}
		return domain.Return{}, err
	}
	if ret.Lines, err = loadReturnLines(ctx, conn, ret.ID); err != nil {
		return domain.Return{}, err
	}
	return ret, nil
}

// ListByOrder внутри транзакции блокирует строку заказа: параллельные возвраты
// по одному заказу видят предыдущие и не превышают заказанное количество.
func (r *returnRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.Return, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	conn := r.store.conn(ctx)

	if inTx(ctx) {
		var locked string
		err := conn.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&locked)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lock order %s: %w", orderID, err)
		}
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT `+returnColumns+`
		FROM order_returns
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var result []domain.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate returns: %w", err)
	}
	rows.Close()

	for i := range result {
		if result[i].Lines, err = loadReturnLines(ctx, conn, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *returnRepository) AppendWarnings(ctx context.Context, id string, warnings []string) error {
	payload, err := json.Marshal(nonNil(warnings))
	if err != nil {
		return fmt.Errorf("encode restock warnings: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.store.conn(ctx).ExecContext(ctx, `
		UPDATE order_returns
		SET restock_warnings = restock_warnings || $2::jsonb
		WHERE id = $1
	`, id, payload)
	if err != nil {
		return fmt.Errorf("append restock warnings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("return rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}

func scanReturn(row rowScanner) (domain.Return, error) {
	var (
		ret      domain.Return
		reason   string
		role     string
		warnings []byte
	)
	if err := row.Scan(
		&ret.ID, &ret.Number, &ret.OrderID, &reason, &ret.Notes,
		&ret.ProcessedBy, &role, &warnings, &ret.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Return{}, err
		}
		return domain.Return{}, fmt.Errorf("scan return: %w", err)
	}
	ret.Reason = domain.ReturnReason(reason)
	ret.ProcessedRole = domain.Role(role)
	ret.CreatedAt = ret.CreatedAt.UTC()
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &ret.RestockWarnings); err != nil {
			return domain.Return{}, fmt.Errorf("decode restock warnings: %w", err)
		}
	}
	if len(ret.RestockWarnings) == 0 {
		ret.RestockWarnings = nil
	}
	return ret, nil
}

func loadReturnLines(ctx context.Context, conn executor, returnID string) ([]domain.LineDisposition, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT item_id, product_ref, qty, condition, restock
		FROM order_return_lines
		WHERE return_id = $1
		ORDER BY position ASC
	`, returnID)
	if err != nil {
		return nil, fmt.Errorf("load return lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.LineDisposition
	for rows.Next() {
		var (
			line      domain.LineDisposition
			condition string
		)
		if err := rows.Scan(&line.ItemID, &line.ProductRef, &line.Qty, &condition, &line.Restock); err != nil {
			return nil, fmt.Errorf("scan return line: %w", err)
		}
		line.Condition = domain.ItemCondition(condition)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return lines: %w", err)
	}
	return lines, nil
}

var _ domain.ReturnRepository = (*returnRepository)(nil)
