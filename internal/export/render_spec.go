package export

import (
	"fmt"

	"slate/internal/rtspec"
)

// SpecNode renders the node into the tagged record the runtime reflection
// layer consumes. One allocation per node; child descriptors are referenced
// rather than copied, so sharing in the export model survives in the spec
// graph. The result is cached for the node's lifetime.
func (t *Type) SpecNode() (*rtspec.Node, bool) {
	if t.specNode != nil {
		return t.specNode, true
	}

	switch t.class {
	case ClassPrimitive:
		t.specNode = &rtspec.Node{Class: rtspec.ClassPrimitive, Data: t.data}

	case ClassPointer:
		pointee, ok := t.pointee.SpecNode()
		if !ok {
			return nil, false
		}
		t.specNode = &rtspec.Node{Class: rtspec.ClassPointer, Pointee: pointee}

	case ClassVector:
		t.specNode = &rtspec.Node{Class: rtspec.ClassVector, Data: t.data, Lanes: t.lanes}

	case ClassMatrix:
		t.specNode = &rtspec.Node{Class: rtspec.ClassMatrix, Data: t.data}

	case ClassConstantArray:
		elem, ok := t.elem.SpecNode()
		if !ok {
			return nil, false
		}
		t.specNode = &rtspec.Node{Class: rtspec.ClassConstantArray, Elem: elem, Count: t.count}

	case ClassRecord:
		n := &rtspec.Node{
			Class:  rtspec.ClassRecord,
			Name:   t.name,
			Fields: make([]rtspec.Field, 0, len(t.fields)),
		}
		// Publish before rendering fields so a self-reference resolves to
		// this node instead of recursing.
		t.specNode = n
		for _, f := range t.fields {
			ft, ok := f.Type.SpecNode()
			if !ok {
				t.specNode = nil
				return nil, false
			}
			role := rtspec.RoleUser
			if f.Type.class == ClassPrimitive || f.Type.class == ClassVector {
				role = f.Type.role
			}
			n.Fields = append(n.Fields, rtspec.Field{Name: f.Name, Type: ft, Role: role})
		}

	default:
		panic(fmt.Sprintf("export: spec render of unknown class %d", t.class))
	}

	return t.specNode, true
}
