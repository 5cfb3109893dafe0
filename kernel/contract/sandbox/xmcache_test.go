package sandbox

import (
	"math/big"
	"math/rand"
	"sort"
	"testing"
)

func TestXMCachePutGet(t *testing.T) {
	testCases := []struct {
		Bucket string
		Key    string
		Value  string
		Op     string
	}{
		{"b1", "k1", "v1", "put"},
		{"b1", "k1", "v1", "get"},
		{"b1", "k1", "v2", "put"},
		{"b1", "k1", "v2", "get"},
	}
	store := NewMemXModel()

	mc := NewXModelCache(store)
	for _, test := range testCases {
		switch test.Op {
		case "put":
			err := mc.Put(test.Bucket, []byte(test.Key), []byte(test.Value))
			if err != nil {
				t.Fatal(err)
			}
		case "get":
			v, err := mc.Get(test.Bucket, []byte(test.Key))
			if err != nil {
				t.Fatal(err)
			}
			if string(v) != test.Value {
				t.Errorf("expect %s got %s", test.Value, v)
			}
		}
	}
}

func TestXMCacheGetNotFound(t *testing.T) {
	mc := NewXModelCache(NewMemXModel())
	_, err := mc.Get("b1", []byte("nope"))
	if err != ErrNotFound {
		t.Errorf("expect ErrNotFound got %v", err)
	}
}

func TestXMCacheDel(t *testing.T) {
	state := NewMemXModel()
	putVersionedData(state, "b1", []byte("k1"), []byte("v1"))

	mc := NewXModelCache(state)
	if err := mc.Del("b1", []byte("k1")); err != nil {
		t.Fatal(err)
	}
	_, err := mc.Get("b1", []byte("k1"))
	if err != ErrHasDel {
		t.Errorf("expect ErrHasDel got %v", err)
	}
}

func TestXMCacheDiscard(t *testing.T) {
	state := NewMemXModel()
	mc := NewXModelCache(state)
	if err := mc.Put("b1", []byte("k1"), []byte("v1")); err != nil {
		t.Fatal(err)
	}
	// 沙盒丢弃后，底层状态不受影响
	if _, err := state.Get("b1", []byte("k1")); err != ErrNotFound {
		t.Errorf("staged write leaked to backing state, err:%v", err)
	}
}

func TestXMCacheRWSet(t *testing.T) {
	state := NewMemXModel()
	putVersionedData(state, "b1", []byte("k0"), []byte("v0"))

	mc := NewXModelCache(state)
	if _, err := mc.Get("b1", []byte("k0")); err != nil {
		t.Fatal(err)
	}
	if err := mc.Put("b1", []byte("k1"), []byte("v1")); err != nil {
		t.Fatal(err)
	}

	rwset := mc.RWSet()
	if len(rwset.RSet) != 1 {
		t.Errorf("expect 1 read got %d", len(rwset.RSet))
	}
	if len(rwset.WSet) != 1 {
		t.Errorf("expect 1 write got %d", len(rwset.WSet))
	}
	w := rwset.WSet[0]
	if w.Bucket != "b1" || string(w.Key) != "k1" || string(w.Value) != "v1" {
		t.Errorf("unexpected write set entry %+v", w)
	}
}

func TestXMCacheEvents(t *testing.T) {
	mc := NewXModelCache(NewMemXModel())
	mc.AddEvent(nil...)
	if len(mc.Events()) != 0 {
		t.Errorf("expect no events")
	}
}

func TestXMCacheIterator(t *testing.T) {
	const N = 10
	const prefix = "key_"
	keys := make([]string, N)
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < N; i++ {
		key := make([]byte, 10)
		rnd.Read(key)
		keys[i] = prefix + big.NewInt(0).SetBytes(key).Text(35)
	}

	state := NewMemXModel()
	for i := 0; i < N/2; i++ {
		putVersionedData(state, "test", []byte(keys[i]), []byte(keys[i]))
	}
	mc := NewXModelCache(state)
	for i := N / 2; i < N; i++ {
		mc.Put("test", []byte(keys[i]), []byte(keys[i]))
	}

	sort.Strings(keys)

	iter, err := mc.Select("test", []byte(prefix), []byte(prefix+"\xff"))
	if err != nil {
		t.Fatal(err)
	}
	defer iter.Close()

	var got []string
	for iter.Next() {
		got = append(got, string(iter.Value()))
	}
	if iter.Error() != nil {
		t.Fatal(iter.Error())
	}

	if len(got) != N {
		t.Fatalf("expect %d keys got %d", N, len(got))
	}
	for i := range keys {
		if keys[i] != got[i] {
			t.Errorf("expect %s got %s", keys[i], got[i])
		}
	}
}
