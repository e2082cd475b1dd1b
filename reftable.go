package hessian
// refTable and classTable are the two append-only, index-addressed
// registries spec §3 requires: every composite value is registered in
// refTable the instant its frame is pushed (before its contents are
// decoded, which is what lets back-references resolve to a
// still-populating value and thereby represent cycles), and every
// inline class definition is registered in classTable the instant its
// 'C' frame is pushed.
//
// Adapted from kisielk/og-rek's memo: teacher's memo is a
// map[string]interface{} because pickle's GET/PUT opcodes address
// entries by an arbitrary string key chosen by the encoder. Hessian's
// back-references and class-definition citations are purely
// positional (0-based index of registration order), so the same idea
// — "a side table populated during parsing, consulted later by key" —
// is realized here as a plain growable slice instead of a map.

type refTable struct {
	values []interface{}
}

func (t *refTable) reset() {
	t.values = t.values[:0]
}

// register appends v to the table and returns its assigned index.
func (t *refTable) register(v interface{}) int {
	t.values = append(t.values, v)
	return len(t.values) - 1
}

// at returns the value at idx, or an error if idx is out of range.
func (t *refTable) at(pos int, idx int64) (interface{}, error) {
	if idx < 0 || idx >= int64(len(t.values)) {
		return nil, refOutOfRange(pos, idx)
	}
	return t.values[idx], nil
}

type classTable struct {
	defs []*ClassDef
}

func (t *classTable) reset() {
	t.defs = t.defs[:0]
}

// register appends def to the table and returns its assigned index.
func (t *classTable) register(def *ClassDef) int {
	t.defs = append(t.defs, def)
	return len(t.defs) - 1
}

// at returns the class definition at idx, or an error if idx is out of range.
func (t *classTable) at(pos int, idx int64) (*ClassDef, error) {
	if idx < 0 || idx >= int64(len(t.defs)) {
		return nil, classOutOfRange(pos, idx)
	}
	return t.defs[idx], nil
}
