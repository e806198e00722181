package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Transaction runs a sequence of steps and, when one fails, runs the
// compensations of the steps that already succeeded in reverse order.
type Transaction struct {
	steps []step
}

type step struct {
	name       string
	run        func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registers a step. compensate may be nil for steps with nothing to undo.
func (t *Transaction) AddStep(name string, run, compensate func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, run: run, compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.run(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	// contexto próprio: o da requisição pode já ter sido cancelado
	ctx = context.WithoutCancel(ctx)
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			slog.Warn("compensation failed, data may be inconsistent", "step", s.name, "error", err)
		}
	}
}
