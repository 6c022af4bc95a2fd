package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

const promotionColumns = `
	id, name, type, value, rules, active, start_at, end_at, usage_limit, usage_count, created_at, updated_at`

// ruleRecord — JSON-представление правила в колонке promotions.rules.
type ruleRecord struct {
	Kind        string   `json:"kind"`
	Field       string   `json:"field,omitempty"`
	Operator    string   `json:"operator,omitempty"`
	Amount      int64    `json:"amount,omitempty"`
	Values      []string `json:"values,omitempty"`
	Action      string   `json:"action,omitempty"`
	Percent     int64    `json:"percent,omitempty"`
	AmountMinor int64    `json:"amount_minor,omitempty"`
	BuyQty      int32    `json:"buy_qty,omitempty"`
	GetQty      int32    `json:"get_qty,omitempty"`
	ProductRefs []string `json:"product_refs,omitempty"`
	Priority    int      `json:"priority,omitempty"`
}

const (
	ruleKindCondition = "condition"
	ruleKindAction    = "action"
)

func encodeRules(rules []domain.Rule) ([]byte, error) {
	records := make([]ruleRecord, 0, len(rules))
	for _, rule := range rules {
		switch r := rule.(type) {
		case domain.ConditionRule:
			records = append(records, ruleRecord{
				Kind:     ruleKindCondition,
				Field:    string(r.Field),
				Operator: string(r.Operator),
				Amount:   r.Amount,
				Values:   r.Values,
				Priority: r.Priority,
			})
		case domain.ActionRule:
			records = append(records, ruleRecord{
				Kind:        ruleKindAction,
				Action:      string(r.Kind),
				Percent:     r.Percent,
				AmountMinor: r.AmountMinor,
				BuyQty:      r.BuyQty,
				GetQty:      r.GetQty,
				ProductRefs: r.ProductRefs,
				Priority:    r.Priority,
			})
		default:
			return nil, fmt.Errorf("%w: unsupported rule %T", domain.ErrPromotionRuleInvalid, rule)
		}
	}
	return json.Marshal(records)
}

func decodeRules(raw []byte) ([]domain.Rule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []ruleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode promotion rules: %w", err)
	}

	rules := make([]domain.Rule, 0, len(records))
	for _, rec := range records {
		switch rec.Kind {
		case ruleKindCondition:
			rules = append(rules, domain.ConditionRule{
				Field:    domain.ConditionField(rec.Field),
				Operator: domain.ConditionOperator(rec.Operator),
				Amount:   rec.Amount,
				Values:   rec.Values,
				Priority: rec.Priority,
			})
		case ruleKindAction:
			rules = append(rules, domain.ActionRule{
				Kind:        domain.ActionKind(rec.Action),
				Percent:     rec.Percent,
				AmountMinor: rec.AmountMinor,
				BuyQty:      rec.BuyQty,
				GetQty:      rec.GetQty,
				ProductRefs: rec.ProductRefs,
				Priority:    rec.Priority,
			})
		default:
			return nil, fmt.Errorf("%w: unknown rule kind %q", domain.ErrPromotionRuleInvalid, rec.Kind)
		}
	}
	return rules, nil
}

type promotionRepository struct {
	store *Store
	now   func() time.Time
}

// NewPromotionRepository создаёт PostgreSQL-каталог промо-акций.
func NewPromotionRepository(store *Store) domain.PromotionRepository {
	return &promotionRepository{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (r *promotionRepository) LoadActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.store.conn(ctx).QueryContext(ctx, `
		SELECT `+promotionColumns+`
		FROM promotions
		WHERE active
		  AND (start_at IS NULL OR start_at <= $1)
		  AND (end_at IS NULL OR end_at >= $1)
		ORDER BY created_at ASC, id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("load active promotions: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Promotion, 0)
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotions: %w", err)
	}
	return result, nil
}

func (r *promotionRepository) Get(ctx context.Context, id string) (domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	promo, err := scanPromotion(r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return promo, err
}

// Upsert создаёт или обновляет акцию. usage_count меняется только через Increment/Decrement.
func (r *promotionRepository) Upsert(ctx context.Context, promotion domain.Promotion) error {
	if err := promotion.Validate(); err != nil {
		return err
	}
	rules, err := encodeRules(promotion.Rules)
	if err != nil {
		return err
	}

	now := r.now()
	if promotion.CreatedAt.IsZero() {
		promotion.CreatedAt = now
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.store.conn(ctx).ExecContext(ctx, `
		INSERT INTO promotions (`+promotionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,0,$10,$11)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    type = EXCLUDED.type,
		    value = EXCLUDED.value,
		    rules = EXCLUDED.rules,
		    active = EXCLUDED.active,
		    start_at = EXCLUDED.start_at,
		    end_at = EXCLUDED.end_at,
		    usage_limit = EXCLUDED.usage_limit,
		    updated_at = EXCLUDED.updated_at
	`,
		promotion.ID, promotion.Name, string(promotion.Type), promotion.Value, rules, promotion.Active,
		nullTime(promotion.StartAt), nullTime(promotion.EndAt), nullInt64(promotion.UsageLimit),
		promotion.CreatedAt, now,
	); err != nil {
		return fmt.Errorf("upsert promotion %s: %w", promotion.ID, err)
	}
	return nil
}

// IncrementUsage увеличивает счётчик одним условным UPDATE: лимит проверяется в той же строке.
func (r *promotionRepository) IncrementUsage(ctx context.Context, id string) error {
	return r.adjust(ctx, id, `
		UPDATE promotions
		SET usage_count = usage_count + 1, updated_at = $2
		WHERE id = $1
		  AND (usage_limit IS NULL OR usage_count < usage_limit)
	`, domain.ErrPromotionUsageExhausted)
}

// DecrementUsage уменьшает счётчик, не опускаясь ниже нуля.
func (r *promotionRepository) DecrementUsage(ctx context.Context, id string) error {
	return r.adjust(ctx, id, `
		UPDATE promotions
		SET usage_count = GREATEST(usage_count - 1, 0), updated_at = $2
		WHERE id = $1
	`, nil)
}

func (r *promotionRepository) adjust(ctx context.Context, id, query string, onMiss error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	conn := r.store.conn(ctx)

	res, err := conn.ExecContext(ctx, query, id, r.now())
	if err != nil {
		return fmt.Errorf("adjust promotion usage %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promotion rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM promotions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check promotion exists: %w", err)
	}
	if !exists || onMiss == nil {
		return domain.ErrPromotionNotFound
	}
	return onMiss
}

func scanPromotion(row rowScanner) (domain.Promotion, error) {
	var (
		promo      domain.Promotion
		typ        string
		rules      []byte
		startAt    sql.NullTime
		endAt      sql.NullTime
		usageLimit sql.NullInt64
	)
	if err := row.Scan(
		&promo.ID, &promo.Name, &typ, &promo.Value, &rules, &promo.Active,
		&startAt, &endAt, &usageLimit, &promo.UsageCount, &promo.CreatedAt, &promo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Promotion{}, err
		}
		return domain.Promotion{}, fmt.Errorf("scan promotion: %w", err)
	}

	decoded, err := decodeRules(rules)
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("promotion %s: %w", promo.ID, err)
	}
	promo.Type = domain.PromotionType(typ)
	promo.Rules = decoded
	if startAt.Valid {
		t := startAt.Time.UTC()
		promo.StartAt = &t
	}
	if endAt.Valid {
		t := endAt.Time.UTC()
		promo.EndAt = &t
	}
	if usageLimit.Valid {
		v := usageLimit.Int64
		promo.UsageLimit = &v
	}
	promo.CreatedAt = promo.CreatedAt.UTC()
	promo.UpdatedAt = promo.UpdatedAt.UTC()
	return promo, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

var _ domain.PromotionRepository = (*promotionRepository)(nil)
