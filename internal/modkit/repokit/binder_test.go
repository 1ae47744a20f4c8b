package repokit

import (
	"context"
	"strings"
	"testing"

	"feedbackd/internal/platform/store"
	kit "feedbackd/internal/platform/testkit"
)

type fakeQ struct{}

func (fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }

type repo struct {
	dialect string
	q       Queryer
}

func dialect(name string) BindFunc[repo] {
	return func(q Queryer) repo { return repo{dialect: name, q: q} }
}

func TestMustBind(t *testing.T) {
	q := &fakeQ{}
	if got := MustBind[repo](dialect("pg"), q); got.q != q || got.dialect != "pg" {
		t.Fatalf("MustBind = %+v", got)
	}
	kit.MustPanic(t, func() { _ = MustBind[repo](dialect("pg"), nil) })
}

func TestDialects(t *testing.T) {
	d := Dialects[repo]{"sqlite": dialect("sqlite"), "pg": dialect("pg"), "broken": nil}

	b, err := d.For("pg")
	if err != nil || b.Bind(fakeQ{}).dialect != "pg" {
		t.Fatalf("For(pg) = %v, %v", b, err)
	}

	_, err = d.For("mysql")
	if err == nil || !strings.Contains(err.Error(), `"mysql" (have [pg sqlite])`) {
		t.Fatalf("unknown driver err = %v", err)
	}
	if _, err := d.For("broken"); err == nil {
		t.Fatal("nil binder should be rejected")
	}

	r, err := d.Bind("sqlite", fakeQ{})
	if err != nil || r.dialect != "sqlite" {
		t.Fatalf("Bind(sqlite) = %+v, %v", r, err)
	}
	if _, err := d.Bind("mysql", fakeQ{}); err == nil {
		t.Fatal("Bind should surface the lookup error")
	}
}
