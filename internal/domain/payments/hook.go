package payments

import (
	"context"
	"fmt"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

// JournalHook пишет каждую оплату в Store.
type JournalHook struct{ store Store }

func NewJournalHook(store Store) *JournalHook { return &JournalHook{store: store} }

func (h *JournalHook) Name() string { return "journal" }

func (h *JournalHook) OnSettlement(ctx context.Context, s meter.Settlement) error {
	p := FromSettlement(s)
	if err := h.store.Save(ctx, p); err != nil {
		return fmt.Errorf("save payment %s: %w", p.ID, err)
	}
	return nil
}
