// Package repokit picks the repository implementation that matches the SQL driver the store opened
package repokit

import (
	"fmt"
	"maps"
	"slices"

	"feedbackd/internal/platform/store"
)

// Queryer is what a repository runs its statements against
type Queryer = store.RowQuerier

// TxRunner adds transactions on top of Queryer; modkit.Deps carries one
type TxRunner = store.TxRunner

// Binder turns a Queryer into a repository of type T
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// Dialects is keyed by store driver name, e.g. store.DriverPG
type Dialects[T any] map[string]Binder[T]

// For looks up the binder for driver; unknown drivers and nil entries are errors
func (d Dialects[T]) For(driver string) (Binder[T], error) {
	b := d[driver]
	if b == nil {
		return nil, fmt.Errorf("repokit: no binder for driver %q (have %v)", driver, d.drivers())
	}
	return b, nil
}

// Bind is For followed by MustBind
func (d Dialects[T]) Bind(driver string, q Queryer) (T, error) {
	b, err := d.For(driver)
	if err != nil {
		var zero T
		return zero, err
	}
	return MustBind(b, q), nil
}

func (d Dialects[T]) drivers() []string {
	var out []string
	for _, k := range slices.Sorted(maps.Keys(d)) {
		if d[k] != nil {
			out = append(out, k)
		}
	}
	return out
}

// MustBind panics on a nil Queryer, which only happens when wiring is broken
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind with nil Queryer")
	}
	return b.Bind(q)
}
