package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// appendTrail дописывает записи журнала начиная с порядкового номера from.
func appendTrail(ctx context.Context, conn executor, orderID string, entries []domain.ActorTrailEntry, from int) error {
	for i, entry := range entries {
		if _, err := conn.ExecContext(ctx, `
			INSERT INTO order_actor_trail (order_id, seq, from_status, to_status, actor_id, role, note, occurred_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			orderID, from+i, string(entry.From), string(entry.To), entry.ActorID,
			string(entry.Role), entry.Note, entry.Occurred,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrActorTrailRewrite
			}
			return fmt.Errorf("append actor trail entry: %w", err)
		}
	}
	return nil
}

func trailLength(ctx context.Context, conn executor, orderID string) (int, error) {
	var n int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_actor_trail WHERE order_id = $1`, orderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count actor trail: %w", err)
	}
	return n, nil
}

func loadTrail(ctx context.Context, conn executor, orderID string) ([]domain.ActorTrailEntry, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT from_status, to_status, actor_id, role, note, occurred_at
		FROM order_actor_trail
		WHERE order_id = $1
		ORDER BY seq ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list actor trail: %w", err)
	}
	defer rows.Close()

	var trail []domain.ActorTrailEntry
	for rows.Next() {
		var (
			entry    domain.ActorTrailEntry
			from, to string
			role     string
		)
		if err := rows.Scan(&from, &to, &entry.ActorID, &role, &entry.Note, &entry.Occurred); err != nil {
			return nil, fmt.Errorf("scan actor trail entry: %w", err)
		}
		entry.From = domain.OrderStatus(from)
		entry.To = domain.OrderStatus(to)
		entry.Role = domain.Role(role)
		entry.Occurred = entry.Occurred.UTC()
		trail = append(trail, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actor trail: %w", err)
	}

	return trail, nil
}
