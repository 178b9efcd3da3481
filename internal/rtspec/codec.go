package rtspec

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version of the binary record format. Bump when the wire layout
// changes so stale consumers reject the payload instead of misreading it.
const SchemaVersion uint16 = 1

const noRef int32 = -1

type wireField struct {
	Name string `msgpack:"n"`
	Type int32  `msgpack:"t"`
	Role uint8  `msgpack:"r"`
}

type wireNode struct {
	Class  uint8       `msgpack:"c"`
	Data   uint8       `msgpack:"d,omitempty"`
	Lanes  uint32      `msgpack:"l,omitempty"`
	Child  int32       `msgpack:"p"`
	Count  uint32      `msgpack:"s,omitempty"`
	Name   string      `msgpack:"m,omitempty"`
	Fields []wireField `msgpack:"f,omitempty"`
}

type wireImage struct {
	Schema uint16     `msgpack:"v"`
	Root   int32      `msgpack:"root"`
	Nodes  []wireNode `msgpack:"nodes"`
}

// Encode serializes the graph reachable from root. Nodes referenced from
// several parents are written once and referenced by pool index, so sharing
// survives a round trip.
func Encode(w io.Writer, root *Node) error {
	if root == nil {
		return fmt.Errorf("rtspec: nil root")
	}
	index := make(map[*Node]int32)
	var pool []*Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		if _, ok := index[n]; ok {
			return
		}
		index[n] = int32(len(pool)) // #nosec G115 -- pool bounded by graph size
		pool = append(pool, n)
		visit(n.Pointee)
		visit(n.Elem)
		for _, f := range n.Fields {
			visit(f.Type)
		}
	}
	visit(root)

	ref := func(n *Node) int32 {
		if n == nil {
			return noRef
		}
		return index[n]
	}

	img := wireImage{
		Schema: SchemaVersion,
		Root:   index[root],
		Nodes:  make([]wireNode, len(pool)),
	}
	for i, n := range pool {
		wn := wireNode{
			Class: uint8(n.Class),
			Data:  uint8(n.Data),
			Lanes: n.Lanes,
			Child: noRef,
			Count: n.Count,
			Name:  n.Name,
		}
		switch n.Class {
		case ClassPointer:
			wn.Child = ref(n.Pointee)
		case ClassConstantArray:
			wn.Child = ref(n.Elem)
		case ClassRecord:
			wn.Fields = make([]wireField, len(n.Fields))
			for j, f := range n.Fields {
				wn.Fields[j] = wireField{Name: f.Name, Type: ref(f.Type), Role: uint8(f.Role)}
			}
		}
		img.Nodes[i] = wn
	}
	return msgpack.NewEncoder(w).Encode(&img)
}

// Decode reads a binary record image and rebuilds the node graph,
// preserving sharing: two references to the same pool index decode to the
// same *Node.
func Decode(r io.Reader) (*Node, error) {
	var img wireImage
	if err := msgpack.NewDecoder(r).Decode(&img); err != nil {
		return nil, fmt.Errorf("rtspec: decode: %w", err)
	}
	if img.Schema != SchemaVersion {
		return nil, fmt.Errorf("rtspec: schema %d, want %d", img.Schema, SchemaVersion)
	}
	if len(img.Nodes) == 0 {
		return nil, fmt.Errorf("rtspec: empty node pool")
	}

	nodes := make([]*Node, len(img.Nodes))
	for i := range nodes {
		nodes[i] = &Node{}
	}
	ref := func(idx int32) (*Node, error) {
		if idx == noRef {
			return nil, nil
		}
		if idx < 0 || int(idx) >= len(nodes) {
			return nil, fmt.Errorf("rtspec: node ref %d out of range", idx)
		}
		return nodes[idx], nil
	}

	for i, wn := range img.Nodes {
		n := nodes[i]
		n.Class = Class(wn.Class)
		n.Data = DataType(wn.Data)
		n.Lanes = wn.Lanes
		n.Count = wn.Count
		n.Name = wn.Name
		child, err := ref(wn.Child)
		if err != nil {
			return nil, err
		}
		switch n.Class {
		case ClassPointer:
			n.Pointee = child
		case ClassConstantArray:
			n.Elem = child
		case ClassRecord:
			n.Fields = make([]Field, len(wn.Fields))
			for j, wf := range wn.Fields {
				ft, err := ref(wf.Type)
				if err != nil {
					return nil, err
				}
				n.Fields[j] = Field{Name: wf.Name, Type: ft, Role: Role(wf.Role)}
			}
		}
	}

	root, err := ref(img.Root)
	if err != nil || root == nil {
		return nil, fmt.Errorf("rtspec: bad root index %d", img.Root)
	}
	return root, nil
}
