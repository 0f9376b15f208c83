package page

import (
	"strings"
	"testing"

	"github.com/fraunhofer-iese/paramql/internal/sqlbuilder"
)

func TestApplyDefaults(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, _ := b.Build()
	if !strings.Contains(sql, "ORDER BY id ASC") || !strings.Contains(sql, "LIMIT 10") {
		t.Fatalf("unexpected sql: %s", sql)
	}
}

func TestApplySortDescending(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{"sort": "-age"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, _ := b.Build()
	if !strings.Contains(sql, "ORDER BY age DESC") {
		t.Fatalf("unexpected sql: %s", sql)
	}
}

func TestApplyLimitParsesString(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{"limit": "25"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, _ := b.Build()
	if !strings.Contains(sql, "LIMIT 25") {
		t.Fatalf("unexpected sql: %s", sql)
	}
}

func TestApplyLimitParseFailureIsError(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{"limit": "not-a-number"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyStartAddsWhereIDGreater(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{"start": "42"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, args := b.Build()
	if !strings.Contains(sql, "id > $1") || args[0] != "42" {
		t.Fatalf("unexpected sql/args: %s %#v", sql, args)
	}
}

func TestApplyNegStartAddsWhereIDLess(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	if err := Apply(b, map[string]string{"-start": "42"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, _ := b.Build()
	if !strings.Contains(sql, "id < $1") {
		t.Fatalf("unexpected sql: %s", sql)
	}
}

func TestApplyBothStartsIsError(t *testing.T) {
	b := sqlbuilder.NewSelect("t")
	err := Apply(b, map[string]string{"start": "1", "-start": "2"})
	if err == nil {
		t.Fatalf("expected error when both start and -start present")
	}
}
