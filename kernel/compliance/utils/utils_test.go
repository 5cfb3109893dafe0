package utils

import (
	"testing"
)

func TestU64Codec(t *testing.T) {
	for _, v := range []uint64{0, 1, 2, 99, 1<<40 + 7} {
		if got := DecU64(EncU64(v)); got != v {
			t.Fatalf("codec mismatch: %d != %d", got, v)
		}
	}
	if DecU64([]byte("short")) != 0 {
		t.Fatal("bad length should decode to 0")
	}
}

func TestBatchIdValid(t *testing.T) {
	cases := map[string]bool{
		"B-100":    true,
		"":         false,
		"B|100":    false,
		"batch001": true,
	}
	for id, want := range cases {
		if IsValidBatchId(id) != want {
			t.Fatalf("IsValidBatchId(%q) != %v", id, want)
		}
	}
}

func TestBatchList(t *testing.T) {
	raw := ""
	for _, id := range []string{"b1", "b2", "b3"} {
		raw = AppendBatchList(raw, id)
	}
	if raw != "b1|b2|b3" {
		t.Fatalf("unexpected list %s", raw)
	}
	ids := SplitBatchList(raw)
	if len(ids) != 3 || ids[0] != "b1" || ids[2] != "b3" {
		t.Fatalf("unexpected split %v", ids)
	}
	if SplitBatchList("") != nil {
		t.Fatal("empty list should split to nil")
	}
}
