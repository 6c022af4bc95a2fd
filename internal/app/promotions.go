package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// promotionFile — формат файла каталога промо-акций.
//
//	promotions:
//	  - id: free-ship-300k
//	    type: free_shipping
//	    conditions:
//	      - {field: cart_total, operator: gte, amount: 300000}
type promotionFile struct {
	Promotions []promotionSeed `yaml:"promotions"`
}

type promotionSeed struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Value      int64           `yaml:"value"`
	Active     *bool           `yaml:"active"`
	StartAt    *time.Time      `yaml:"start_at"`
	EndAt      *time.Time      `yaml:"end_at"`
	UsageLimit *int64          `yaml:"usage_limit"`
	Conditions []conditionSeed `yaml:"conditions"`
	Actions    []actionSeed    `yaml:"actions"`
}

type conditionSeed struct {
	Field    string   `yaml:"field"`
	Operator string   `yaml:"operator"`
	Amount   int64    `yaml:"amount"`
	Values   []string `yaml:"values"`
	Priority int      `yaml:"priority"`
}

type actionSeed struct {
	Kind        string   `yaml:"kind"`
	Percent     int64    `yaml:"percent"`
	AmountMinor int64    `yaml:"amount_minor"`
	BuyQty      int32    `yaml:"buy_qty"`
	GetQty      int32    `yaml:"get_qty"`
	ProductRefs []string `yaml:"product_refs"`
	Priority    int      `yaml:"priority"`
}

// loadPromotions читает каталог из YAML-файла.
func loadPromotions(path string) ([]domain.Promotion, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read promotions file: %w", err)
	}
	return parsePromotions(raw)
}

func parsePromotions(raw []byte) ([]domain.Promotion, error) {
	var file promotionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode promotions: %w", err)
	}

	out := make([]domain.Promotion, 0, len(file.Promotions))
	for i, seed := range file.Promotions {
		promotion := seed.toDomain()
		if err := promotion.Validate(); err != nil {
			return nil, fmt.Errorf("promotion #%d (%s): %w", i+1, seed.ID, err)
		}
		out = append(out, promotion)
	}
	return out, nil
}

func (s promotionSeed) toDomain() domain.Promotion {
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	promotion := domain.Promotion{
		ID:         strings.TrimSpace(s.ID),
		Name:       s.Name,
		Type:       domain.PromotionType(strings.ToLower(strings.TrimSpace(s.Type))),
		Value:      s.Value,
		Active:     active,
		StartAt:    s.StartAt,
		EndAt:      s.EndAt,
		UsageLimit: s.UsageLimit,
	}
	for _, c := range s.Conditions {
		promotion.Rules = append(promotion.Rules, domain.ConditionRule{
			Field:    domain.ConditionField(c.Field),
			Operator: domain.ConditionOperator(c.Operator),
			Amount:   c.Amount,
			Values:   c.Values,
			Priority: c.Priority,
		})
	}
	for _, a := range s.Actions {
		promotion.Rules = append(promotion.Rules, domain.ActionRule{
			Kind:        domain.ActionKind(a.Kind),
			Percent:     a.Percent,
			AmountMinor: a.AmountMinor,
			BuyQty:      a.BuyQty,
			GetQty:      a.GetQty,
			ProductRefs: a.ProductRefs,
			Priority:    a.Priority,
		})
	}
	return promotion
}

// seedPromotions записывает каталог в репозиторий. Счётчики применений не сбрасываются.
func seedPromotions(ctx context.Context, repo domain.PromotionRepository, path string, logger *log.Entry) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	promotions, err := loadPromotions(path)
	if err != nil {
		return err
	}
	for _, promotion := range promotions {
		if err := repo.Upsert(ctx, promotion); err != nil {
			return fmt.Errorf("seed promotion %s: %w", promotion.ID, err)
		}
	}
	logger.WithFields(log.Fields{"file": path, "count": len(promotions)}).Info("promotion catalogue loaded")
	return nil
}
