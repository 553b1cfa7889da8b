package common

import (
	"bytes"
	"testing"
)

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_ZeroSize(t *testing.T) {
	buf, err := GenerateRandByteArray(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if len(buf) != 0 {
		t.Fatalf("expected empty slice for size=0, got %d bytes", len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	const n = 32
	a, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(a, b) {
		t.Logf("warning: two GenerateRandByteArray(%d) results are identical; extremely unlikely", n)
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
