package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

type journalKey struct{}

// journal накапливает компенсирующие действия для отката единицы работы.
type journal struct {
	undo []func()
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// remember регистрирует откат, если вызов идёт внутри WithinTx.
func remember(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok && j != nil {
		j.undo = append(j.undo, undo)
	}
}

// TxManager сериализует единицы работы и откатывает записи in-memory репозиториев при ошибке.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создаёт in-memory менеджер транзакций.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// WithinTx выполняет fn; при ошибке изменения, сделанные через ctx, откатываются.
// Вложенный вызов выполняется в рамках внешней единицы работы.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(journalKey{}).(*journal); nested {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

var _ domain.TxManager = (*TxManager)(nil)
