package helpers

import "testing"

func TestConstantTimeCompareEqual(t *testing.T) {
	if !ConstantTimeCompare([]byte{1, 2, 3}, []byte{1, 2, 3}) {
		t.Fatal("expected equal slices to compare equal")
	}
}

func TestConstantTimeCompareUnequal(t *testing.T) {
	if ConstantTimeCompare([]byte{1, 2, 3}, []byte{1, 2, 4}) {
		t.Fatal("expected differing slices to compare unequal")
	}
	if ConstantTimeCompare([]byte{1, 2}, []byte{1, 2, 3}) {
		t.Fatal("expected differing-length slices to compare unequal")
	}
}
