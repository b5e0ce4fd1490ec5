package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingPruner struct {
	calls atomic.Int32
	err   error
}

func (pruner *countingPruner) PruneExpiredLinks() (int64, error) {
	pruner.calls.Add(1)
	return 1, pruner.err
}

func TestSignInLinkJanitorRunsUntilCanceled(t *testing.T) {
	pruner := &countingPruner{}
	janitor := NewSignInLinkJanitor(pruner, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- janitor.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for pruner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least two prune passes, got %d", pruner.calls.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run() did not stop after cancel")
	}
}

func TestSignInLinkJanitorKeepsRunningAfterPruneError(t *testing.T) {
	pruner := &countingPruner{err: errors.New("locked")}
	janitor := NewSignInLinkJanitor(pruner, 5*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := janitor.Run(ctx); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if pruner.calls.Load() < 2 {
		t.Fatalf("expected janitor to keep pruning after errors, got %d calls", pruner.calls.Load())
	}
}
