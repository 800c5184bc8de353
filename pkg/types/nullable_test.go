package types

import (
	"encoding/json"
	"testing"
)

func TestNullableUnmarshal(t *testing.T) {
	type payload struct {
		Name     Nullable[string] `json:"name"`
		Calories Nullable[int]    `json:"calories"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"name": "Oat Milk", "calories": 120}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.Name.Set || got.Name.Value == nil || *got.Name.Value != "Oat Milk" {
		t.Fatalf("unexpected name %+v", got.Name)
	}
	if !got.Calories.Set || got.Calories.Value == nil || *got.Calories.Value != 120 {
		t.Fatalf("unexpected calories %+v", got.Calories)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"name": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.Name.Set || got.Name.Value != nil {
		t.Fatalf("expected null to be set but nil, got %+v", got.Name)
	}
	if got.Calories.Set {
		t.Fatalf("expected omitted field to be unset, got %+v", got.Calories)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"calories": "lots"}`), &got); err == nil {
		t.Fatalf("expected type mismatch to fail")
	}
}

func TestNullableCloneDetachesValue(t *testing.T) {
	orig := Present("a")
	clone := orig.Clone()
	*clone.Value = "b"
	if *orig.Value != "a" {
		t.Fatalf("clone should not alias original value")
	}
	if n := Null[int](); !n.Set || n.Value != nil {
		t.Fatalf("Null should be set with nil value")
	}
}
