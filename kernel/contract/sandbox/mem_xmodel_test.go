package sandbox

import (
	"testing"
)

func TestMemXModelPutGet(t *testing.T) {
	m := NewMemXModel()
	putVersionedData(m, "b1", []byte("k1"), []byte("v1"))

	v, err := m.Get("b1", []byte("k1"))
	if err != nil {
		t.Fatal(err)
	}
	if string(v.GetPureData().GetValue()) != "v1" {
		t.Errorf("expect v1 got %s", v.GetPureData().GetValue())
	}

	if _, err := m.Get("b1", []byte("k2")); err != ErrNotFound {
		t.Errorf("expect ErrNotFound got %v", err)
	}
	// bucket隔离
	if _, err := m.Get("b2", []byte("k1")); err != ErrNotFound {
		t.Errorf("expect ErrNotFound got %v", err)
	}
}

func TestMemXModelSelect(t *testing.T) {
	m := NewMemXModel()
	putVersionedData(m, "b1", []byte("a"), []byte("1"))
	putVersionedData(m, "b1", []byte("b"), []byte("2"))
	putVersionedData(m, "b1", []byte("c"), []byte("3"))

	iter, err := m.Select("b1", []byte("a"), []byte("c"))
	if err != nil {
		t.Fatal(err)
	}
	defer iter.Close()

	var got []string
	for iter.Next() {
		got = append(got, string(iter.Value().GetPureData().GetValue()))
	}
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("expect [1 2] got %v", got)
	}
}

func TestMemXModelBadRange(t *testing.T) {
	m := NewMemXModel()
	if _, err := m.Select("b1", []byte("z"), []byte("a")); err == nil {
		t.Errorf("expect bad range error")
	}
}
