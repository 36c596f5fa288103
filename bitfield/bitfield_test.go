package bitfield

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tbl := Table{{0, "A"}, {1, "B"}}

	tests := []struct {
		name     string
		width    uint
		value    uint64
		labels   []string
		residual uint64
	}{
		{"mixed", 8, 0x05, []string{"A"}, 0x04},
		{"all known", 8, 0x03, []string{"A", "B"}, 0},
		{"none", 8, 0, nil, 0},
		{"above width", 8, 0x101, []string{"A"}, 0},
		{"full width", 64, 1 << 63, nil, 1 << 63},
	}

	for _, tt := range tests {
		labels, residual := Decode(tt.width, tt.value, tbl)
		if !reflect.DeepEqual(labels, tt.labels) {
			t.Fatalf("%s: labels %v, want %v", tt.name, labels, tt.labels)
		}
		if residual != tt.residual {
			t.Fatalf("%s: residual 0x%x, want 0x%x", tt.name, residual, tt.residual)
		}
	}
}

func TestDecodeKeepsTableOrder(t *testing.T) {
	tbl := Table{{3, "D"}, {0, "A"}}
	labels, _ := Decode(8, 0x09, tbl)
	if !reflect.DeepEqual(labels, []string{"D", "A"}) {
		t.Fatalf("got %v", labels)
	}
}
