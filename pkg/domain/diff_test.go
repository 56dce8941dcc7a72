package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/morph/pkg/value"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  value.Map
		new  value.Map
		want value.Map // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  value.Map{"a": value.Integer(1)},
			want: value.Map{"a": value.Integer(1)},
		},
		{
			name: "No Changes",
			old:  value.Map{"a": value.Integer(1), "l": value.Sequence(value.Text("x"))},
			new:  value.Map{"a": value.Integer(1), "l": value.Sequence(value.Text("x"))},
			want: nil,
		},
		{
			name: "Modified Kind",
			old:  value.Map{"a": value.Integer(1)},
			new:  value.Map{"a": value.Float(1)},
			want: value.Map{"a": value.Float(1)},
		},
		{
			name: "Added and Removed",
			old:  value.Map{"gone": value.Text("x"), "same": value.Integer(2)},
			new:  value.Map{"same": value.Integer(2), "new": value.Text("y")},
			want: value.Map{"gone": value.Other(nil), "new": value.Text("y")},
		},
		{
			name: "Both Empty",
			old:  value.Map{},
			new:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("r", tt.old, tt.new)

			if tt.want == nil {
				if !got.IsEmpty() {
					t.Errorf("Diff() = %v, want no diff", got.Changes)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %v", tt.want)
			}
			if !tt.want.Equal(got.Changes) {
				t.Errorf("Diff() = %v, want %v", got.Changes, tt.want)
			}
		})
	}
}

func TestDiff_JSONDeletionIsNull(t *testing.T) {
	d := Diff("r", value.Map{"gone": value.Integer(1)}, value.Map{})

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(data), `{"name":"r","changes":{"gone":null}}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestDiff_NaNIsUnchanged(t *testing.T) {
	prev := value.Map{"ratio": value.Float(math.NaN()), "n": value.Integer(1)}
	next := value.Map{"ratio": value.Float(math.NaN()), "n": value.Integer(1)}

	if d := Diff("r", prev, next); d != nil {
		t.Errorf("Diff() = %v, want nil", d.Changes)
	}
}
