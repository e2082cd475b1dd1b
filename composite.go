package hessian
// composite.go builds Hessian's three composite kinds — vectors, maps,
// and class-governed object instances — and implements emit, the
// continuation dispatcher of spec §4.7: once a value has been fully
// decoded (by any of the mechanisms in opcode.go, scalar.go, or
// strbuf.go), emit decides what to do with it based on the state the
// frame beneath it is now in, which may itself complete a further
// enclosing value and cascade.
//
// Grounded on ogorek.go's loadList/loadDict/loadAppend/loadSetItem
// family, which perform the equivalent "pop the just-finished value,
// fold it into the composite now exposed on the stack" step for
// pickle's stack-machine opcodes; here that step is generalized to a
// single emit loop because Hessian, unlike pickle, has several
// distinct composite shapes (streamed vs. fixed-size vectors, typed
// vs. untyped, inline class definitions, cyclic back-references) that
// all need the same "fold a completed value into its parent and
// possibly cascade" treatment.

// emit propagates a fully-decoded value v to whatever the parse stack
// now considers it to be part of, looping when completing one value
// immediately completes (or otherwise advances) another.
func (d *Decoder) emit(v interface{}) error {
	for {
		if len(d.stack) == 0 {
			d.finalValue = v
			d.haveFinal = true
			return nil
		}
		top := d.top()
		switch top.state {
		case stateVector:
			vec := top.result.(*Vector)
			*vec = append(*vec, v)
			return nil

		case stateVectorFixed:
			vec := top.result.(*Vector)
			*vec = append(*vec, v)
			if int64(len(*vec)) == top.expectedSize {
				d.popFrame()
				v = vec
				continue
			}
			return nil

		case stateVectorSize:
			d.popFrame()
			size := int64(v.(int32))
			parent := d.top()
			parent.expectedSize = size
			vec := parent.result.(*Vector)
			if size == 0 {
				d.popFrame()
				v = vec
				continue
			}
			*vec = make(Vector, 0, size)
			return nil

		case stateMapKey:
			top.nextKey = v
			top.state = stateMapValue
			return nil

		case stateMapValue:
			m := top.result.(*OrderedMap)
			m.Set(top.nextKey, v)
			top.nextKey = nil
			top.state = stateMapKey
			return nil

		case stateClassDefinitionName:
			def := top.result.(*ClassDef)
			def.Name = v.(string)
			top.state = stateClassDefinitionSize
			return nil

		case stateClassDefinitionSize:
			def := top.result.(*ClassDef)
			size := int64(v.(int32))
			top.expectedSize = size
			if size == 0 {
				d.popFrame() // class definitions never themselves produce a value
				return nil
			}
			def.Fields = make([]string, 0, size)
			top.state = stateClassDefinitionField
			return nil

		case stateClassDefinitionField:
			def := top.result.(*ClassDef)
			def.Fields = append(def.Fields, v.(string))
			if int64(len(def.Fields)) == top.expectedSize {
				d.popFrame()
			}
			return nil

		case stateObjectInstanceType:
			d.popFrame()
			def, err := d.classes.at(d.pos, int64(v.(int32)))
			if err != nil {
				return err
			}
			obj, err := d.beginObjectInstance(def)
			if err != nil {
				return err
			}
			if obj != nil {
				v = obj
				continue
			}
			return nil

		case stateObjectInstanceField:
			obj := top.result.(*Object)
			idx := top.nextKey.(int)
			obj.Fields.Set(obj.Def.Fields[idx], v)
			idx++
			top.nextKey = idx
			if idx == len(obj.Def.Fields) {
				d.popFrame()
				v = obj
				continue
			}
			return nil

		case stateReference:
			d.popFrame()
			resolved, err := d.refs.at(d.pos, int64(v.(int32)))
			if err != nil {
				return err
			}
			v = resolved
			continue

		case stateCollectionType:
			d.popFrame() // the type tag is read and discarded
			if newTop := d.top(); newTop.state == stateVectorFixed && newTop.expectedSize == 0 {
				vec := newTop.result.(*Vector)
				d.popFrame()
				v = vec
				continue
			}
			return nil

		default:
			return internalError(d.pos, top.state)
		}
	}
}

// newEmptyVector registers and returns a freshly allocated, permanently
// empty vector, for the untyped compact opcode of size zero (0x78),
// whose size is known before any element frame would be pushed.
func (d *Decoder) newEmptyVector() *Vector {
	vec := make(Vector, 0)
	d.registerComposite(&vec)
	return &vec
}

// registerComposite appends a newly constructed vector, map, or object
// to the reference table at the moment of its creation, per spec §3.
func (d *Decoder) registerComposite(v interface{}) int {
	return d.refs.register(v)
}

// beginVectorStreamed starts a 'Z'-terminated vector, typed or untyped.
func (d *Decoder) beginVectorStreamed(typed bool) error {
	vecPtr := new(Vector)
	d.registerComposite(vecPtr)
	if err := d.pushFrame(&frame{state: stateVector, result: vecPtr}); err != nil {
		return err
	}
	if typed {
		return d.pushFrame(&frame{state: stateCollectionType})
	}
	return nil
}

// beginVectorFixedSized starts a fixed-size vector whose length is
// still to come as an int32 (the long forms 'V' and 0x58).
func (d *Decoder) beginVectorFixedSized(typed bool) error {
	vecPtr := new(Vector)
	d.registerComposite(vecPtr)
	if err := d.pushFrame(&frame{state: stateVectorFixed, result: vecPtr}); err != nil {
		return err
	}
	if err := d.pushFrame(&frame{state: stateVectorSize}); err != nil {
		return err
	}
	if typed {
		return d.pushFrame(&frame{state: stateCollectionType})
	}
	return nil
}

// beginVectorFixedCompact starts a fixed-size vector whose length is
// already known from the opcode itself (the compact forms
// [0x70..0x7f]).
func (d *Decoder) beginVectorFixedCompact(size int64, typed bool) error {
	if size == 0 && !typed {
		return d.emit(d.newEmptyVector())
	}
	vecPtr := new(Vector)
	d.registerComposite(vecPtr)
	if size > 0 {
		vv := make(Vector, 0, size)
		*vecPtr = vv
	}
	if err := d.pushFrame(&frame{state: stateVectorFixed, result: vecPtr, expectedSize: size}); err != nil {
		return err
	}
	if typed {
		return d.pushFrame(&frame{state: stateCollectionType})
	}
	return nil
}

// beginObjectInstance resolves to either an already-complete, empty
// object (def has no fields, returned directly for the caller to
// emit), or pushes an OBJECT_INSTANCE_FIELD frame to accumulate the
// fields ahead, in both cases registering the object in the reference
// table at this, its moment of creation.
func (d *Decoder) beginObjectInstance(def *ClassDef) (*Object, error) {
	obj := newObject(def)
	d.registerComposite(obj)
	if len(def.Fields) == 0 {
		return obj, nil
	}
	f := &frame{state: stateObjectInstanceField, result: obj, nextKey: 0}
	if err := d.pushFrame(f); err != nil {
		return nil, err
	}
	return nil, nil
}
