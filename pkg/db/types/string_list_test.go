package dbtypes

import (
	"encoding/json"
	"testing"
)

func TestStringListRoundTripThroughDriver(t *testing.T) {
	in := StringList{"peanuts", "soy"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `["peanuts","soy"]` {
		t.Fatalf("unexpected stored value %v", v)
	}

	var out StringList
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 2 || out[0] != "peanuts" || out[1] != "soy" {
		t.Fatalf("unexpected list %v", out)
	}
}

func TestStringListEmptyAndNull(t *testing.T) {
	var empty StringList
	v, err := empty.Value()
	if err != nil || v != "[]" {
		t.Fatalf("expected [] got %v (%v)", v, err)
	}

	var out StringList
	if err := out.Scan(nil); err != nil || out == nil || len(out) != 0 {
		t.Fatalf("nil scan should yield empty list, got %v (%v)", out, err)
	}
	if err := out.Scan("null"); err != nil || len(out) != 0 {
		t.Fatalf("null scan should yield empty list, got %v (%v)", out, err)
	}
	if err := out.Scan(12); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if err := out.Scan("{not json"); err == nil {
		t.Fatalf("expected parse error")
	}

	raw, err := json.Marshal(struct {
		Allergens StringList `json:"allergens"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"allergens":[]}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
