package core

import "fmt"

// Table is an in-memory set of indirect objects, numbered from 1 in the
// order they are added. It stands in for the object section of a PDF file.
type Table struct {
	objects map[int]Object
	next    int
}

// NewTable creates a new empty object table
func NewTable() *Table {
	return &Table{
		objects: make(map[int]Object),
		next:    1,
	}
}

// Add stores obj under the next free object number and returns a reference to it
func (t *Table) Add(obj Object) IndirectRef {
	ref := IndirectRef{Number: t.next}
	t.objects[t.next] = obj
	t.next++
	return ref
}

// Get retrieves an object by object number
func (t *Table) Get(objNum int) (Object, bool) {
	obj, ok := t.objects[objNum]
	return obj, ok
}

// Size returns the number of objects in the table
func (t *Table) Size() int {
	return len(t.objects)
}

// Resolve follows obj if it is an indirect reference and returns it unchanged otherwise.
func (t *Table) Resolve(obj Object) (Object, error) {
	ref, ok := obj.(IndirectRef)
	if !ok {
		return obj, nil
	}
	resolved, ok := t.objects[ref.Number]
	if !ok || ref.Generation != 0 {
		return nil, fmt.Errorf("object %s not found", ref)
	}
	return resolved, nil
}
