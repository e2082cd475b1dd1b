package hessian

import "fmt"

// ClassDef is an inline class definition declared by the 'C' opcode:
// a class name together with the ordered list of field names that
// later object instances citing this definition will populate, in
// that order.
//
// ClassDef records are a parse-time side effect of decoding; they are
// never returned to the caller as a decoded value, only Object
// instances that cite them are.
type ClassDef struct {
	Name   string
	Fields []string
}

// Object is a decoded Hessian object instance: the class it is an
// instance of, plus an ordered bag of field name → value.
//
// Object mirrors the design note's "dynamic field bags" model:
// decoded objects are not synthesized into ad hoc Go struct types,
// they are a uniform {class, fields} container with accessors.
type Object struct {
	Def    *ClassDef
	Fields *OrderedMap
}

// newObject allocates an Object for the given class definition with an
// empty, appropriately sized field map.
func newObject(def *ClassDef) *Object {
	return &Object{
		Def:    def,
		Fields: NewOrderedMapWithSizeHint(len(def.Fields)),
	}
}

// ClassName returns the name of the class this object is an instance of.
func (o *Object) ClassName() string {
	return o.Def.Name
}

// Field returns the value of the named field and whether it is present.
func (o *Object) Field(name string) (interface{}, bool) {
	return o.Fields.Get_(name)
}

// String returns a human-readable representation of the object.
func (o *Object) String() string {
	return fmt.Sprintf("%s%s", o.Def.Name, o.Fields.sprintf("%v"))
}
