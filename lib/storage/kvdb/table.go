package kvdb

// table 在已有Database上加key前缀，隔离出一个子表
type table struct {
	db     Database
	prefix string
}

// NewTable returns a Database that prefixes all keys with the given string
func NewTable(db Database, prefix string) Database {
	return &table{
		db:     db,
		prefix: prefix,
	}
}

func (dt *table) Open(path string, options map[string]interface{}) error {
	return dt.db.Open(path, options)
}

func (dt *table) Path() string {
	return dt.db.Path()
}

func (dt *table) Put(key []byte, value []byte) error {
	return dt.db.Put(append([]byte(dt.prefix), key...), value)
}

func (dt *table) Get(key []byte) ([]byte, error) {
	return dt.db.Get(append([]byte(dt.prefix), key...))
}

func (dt *table) Has(key []byte) (bool, error) {
	return dt.db.Has(append([]byte(dt.prefix), key...))
}

func (dt *table) Delete(key []byte) error {
	return dt.db.Delete(append([]byte(dt.prefix), key...))
}

func (dt *table) Close() {
	// table关闭由底层Database负责
}

func (dt *table) NewBatch() Batch {
	return &tableBatch{dt.db.NewBatch(), dt.prefix}
}

func (dt *table) NewIteratorWithRange(start []byte, limit []byte) Iterator {
	s := append([]byte(dt.prefix), start...)
	l := append([]byte(dt.prefix), limit...)
	return dt.db.NewIteratorWithRange(s, l)
}

func (dt *table) NewIteratorWithPrefix(prefix []byte) Iterator {
	return dt.db.NewIteratorWithPrefix(append([]byte(dt.prefix), prefix...))
}

type tableBatch struct {
	batch  Batch
	prefix string
}

func (tb *tableBatch) ValueSize() int {
	return tb.batch.ValueSize()
}

func (tb *tableBatch) Write() error {
	return tb.batch.Write()
}

func (tb *tableBatch) Reset() {
	tb.batch.Reset()
}

func (tb *tableBatch) Put(key []byte, value []byte) error {
	return tb.batch.Put(append([]byte(tb.prefix), key...), value)
}

func (tb *tableBatch) Delete(key []byte) error {
	return tb.batch.Delete(append([]byte(tb.prefix), key...))
}

func (tb *tableBatch) Exist(key []byte) bool {
	return tb.batch.Exist(append([]byte(tb.prefix), key...))
}
