package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "feedbackd/internal/platform/testkit"
)

type guardFunc func(context.Context) error

func (f guardFunc) Guard(ctx context.Context) error { return f(ctx) }

func TestGuard_AddsDeadline(t *testing.T) {
	var deadline time.Time
	err := Guard(context.Background(), guardFunc(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if left := time.Until(deadline); left <= 0 || left > GuardTimeout {
		t.Fatalf("deadline %v away", left)
	}
}

func TestGuard_KeepsCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	want, _ := ctx.Deadline()

	_ = Guard(ctx, guardFunc(func(ctx context.Context) error {
		if got, _ := ctx.Deadline(); !got.Equal(want) {
			t.Fatalf("deadline replaced: %v != %v", got, want)
		}
		return nil
	}))
}

func TestGuard_Errors(t *testing.T) {
	down := errors.New("sqlite: unable to open database file")
	err := Guard(context.Background(), guardFunc(func(context.Context) error { return down }))
	if !errors.Is(err, down) {
		t.Fatalf("err = %v", err)
	}
	if Guard(context.Background(), nil) == nil {
		t.Fatalf("nil guarder must fail")
	}

	kit.MustPanicWith(t, "unable to open", func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return down }))
	})
	kit.MustNotPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return nil }))
	})
}
