package srctype

// Constructor helpers for hosts and tests that assemble descriptor graphs
// by hand.

func Builtin(k BuiltinKind) *Type {
	return &Type{Kind: KindBuiltin, Builtin: k}
}

func PointerTo(pointee *Type) *Type {
	return &Type{Kind: KindPointer, Pointee: pointee}
}

func VectorOf(base *Type, lanes uint32) *Type {
	return &Type{Kind: KindVector, Base: base, Lanes: lanes}
}

func ArrayOf(elem *Type, n uint32) *Type {
	return &Type{Kind: KindConstantArray, Elem: elem, Len: n}
}

func Record(decl *RecordDecl) *Type {
	return &Type{Kind: KindRecord, Record: decl}
}

func Alias(name string, target *Type) *Type {
	return &Type{Kind: KindAlias, AliasName: name, Target: target}
}
