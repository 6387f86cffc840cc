package etl

import (
	"reflect"
	"testing"
)

func TestFilterColumns(t *testing.T) {
	cols := []string{"a", "b", "c"}
	got := FilterColumns(cols, map[string]struct{}{"b": {}})
	if want := []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want=%v got=%v", want, got)
	}
}

func TestFilterColumnsNoExclusions(t *testing.T) {
	cols := []string{"a", "b"}
	got := FilterColumns(cols, nil)
	if !reflect.DeepEqual(got, cols) {
		t.Fatalf("want=%v got=%v", cols, got)
	}
	// The result must be a copy, not an alias of the input.
	got[0] = "z"
	if cols[0] != "a" {
		t.Fatalf("input mutated: %v", cols)
	}
}

func TestFilterColumnsAllExcluded(t *testing.T) {
	got := FilterColumns([]string{"a"}, map[string]struct{}{"a": {}})
	if len(got) != 0 {
		t.Fatalf("want empty, got %v", got)
	}
}
