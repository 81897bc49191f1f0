// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// The types in this file are thin, named views over a Catalog row: each
// wraps the owning Image and a 1-based row number, and exposes the row's
// columns through named accessors instead of positional ones. They are
// cheap to construct and carry no state of their own beyond the handle.

// entity is embedded by every typed row view.
type entity struct {
	img *Image
	row uint32
}

func (e entity) col(t TableIndex, name string) (uint32, error) {
	r, schema, err := e.img.Tables.row(t, e.row)
	if err != nil {
		return 0, err
	}
	i := columnIndex(schema, name)
	if i < 0 {
		return 0, &Error{Kind: ErrMalformed, Detail: "no such column: " + name}
	}
	return r.u32(i), nil
}

func (e entity) str(t TableIndex, name string) (string, error) {
	v, err := e.col(t, name)
	if err != nil {
		return "", err
	}
	return e.img.Heaps.String(v)
}

func (e entity) blob(t TableIndex, name string) ([]byte, error) {
	v, err := e.col(t, name)
	if err != nil {
		return nil, err
	}
	return e.img.Heaps.Blob(v)
}

func (e entity) guid(t TableIndex, name string) (GUID, error) {
	v, err := e.col(t, name)
	if err != nil {
		return EmptyGUID, err
	}
	return e.img.Heaps.GUID(v)
}

func (e entity) coded(t TableIndex, name string) (TableHandle, error) {
	v, err := e.col(t, name)
	if err != nil {
		return TableHandle{}, err
	}
	schema := tableSchemas[t]
	i := columnIndex(schema, name)
	return schema[i].coded.decode(v)
}

func (e entity) simple(t TableIndex, name string, target TableIndex) (TableHandle, error) {
	v, err := e.col(t, name)
	if err != nil {
		return TableHandle{}, err
	}
	return TableHandle{Table: target, Row: v}, nil
}

// Module is the current module descriptor (the single row of the Module
// table every assembly carries).
type Module struct{ entity }

func (img *Image) Module() (Module, error) {
	if img.Tables.RowCount(TableModule) == 0 {
		return Module{}, &Error{Kind: ErrMalformed, Detail: "missing Module row"}
	}
	return Module{entity{img: img, row: 1}}, nil
}

func (m Module) Name() (string, error) { return m.str(TableModule, "Name") }
func (m Module) Mvid() (GUID, error)   { return m.guid(TableModule, "Mvid") }

// TypeRef is a reference to a type defined outside the current module.
type TypeRef struct{ entity }

func (img *Image) TypeRef(row uint32) TypeRef { return TypeRef{entity{img: img, row: row}} }

func (t TypeRef) Name() (string, error)      { return t.str(TableTypeRef, "Name") }
func (t TypeRef) Namespace() (string, error) { return t.str(TableTypeRef, "Namespace") }
func (t TypeRef) ResolutionScope() (TableHandle, error) {
	return t.coded(TableTypeRef, "ResolutionScope")
}

// TypeDef is a type (class, interface, struct, ...) defined in the
// current module.
type TypeDef struct{ entity }

func (img *Image) TypeDef(row uint32) TypeDef { return TypeDef{entity{img: img, row: row}} }

func (t TypeDef) Name() (string, error)      { return t.str(TableTypeDef, "Name") }
func (t TypeDef) Namespace() (string, error) { return t.str(TableTypeDef, "Namespace") }
func (t TypeDef) Flags() (uint32, error)     { return t.col(TableTypeDef, "Flags") }
func (t TypeDef) Extends() (TableHandle, error) {
	return t.coded(TableTypeDef, "Extends")
}

// Fields returns the half-open [start, end) range of Field rows owned by
// this type, derived the way every FieldList-style range column is: the
// end is either the next TypeDef's FieldList or, for the last TypeDef, one
// past the final Field row.
func (t TypeDef) Fields() ([]Field, error) {
	start, err := t.col(TableTypeDef, "FieldList")
	if err != nil {
		return nil, err
	}
	end, err := ownedRangeEnd(t.img, TableTypeDef, "FieldList", TableField, t.row)
	if err != nil {
		return nil, err
	}
	out := make([]Field, 0, end-start)
	for r := start; r < end; r++ {
		out = append(out, Field{entity{img: t.img, row: r}})
	}
	return out, nil
}

// Methods returns this type's MethodDef rows, via the same range pattern
// as Fields.
func (t TypeDef) Methods() ([]MethodDef, error) {
	start, err := t.col(TableTypeDef, "MethodList")
	if err != nil {
		return nil, err
	}
	end, err := ownedRangeEnd(t.img, TableTypeDef, "MethodList", TableMethodDef, t.row)
	if err != nil {
		return nil, err
	}
	out := make([]MethodDef, 0, end-start)
	for r := start; r < end; r++ {
		out = append(out, MethodDef{entity{img: t.img, row: r}})
	}
	return out, nil
}

// ownedRangeEnd resolves the exclusive end of an owning table's
// range-valued column: the same column on the next row of owner, or the
// target table's row count plus one if owner's row is the last one.
func ownedRangeEnd(img *Image, owner TableIndex, column string, target TableIndex, row uint32) (uint32, error) {
	count := img.Tables.RowCount(owner)
	if row < count {
		r, schema, err := img.Tables.row(owner, row+1)
		if err != nil {
			return 0, err
		}
		return r.u32(columnIndex(schema, column)), nil
	}
	return img.Tables.RowCount(target) + 1, nil
}

// Field is a field definition.
type Field struct{ entity }

func (img *Image) Field(row uint32) Field { return Field{entity{img: img, row: row}} }

func (f Field) Name() (string, error)  { return f.str(TableField, "Name") }
func (f Field) Flags() (uint16, error) { v, err := f.col(TableField, "Flags"); return uint16(v), err }
func (f Field) RawSignature() ([]byte, error) { return f.blob(TableField, "Signature") }
func (f Field) Signature() (*FieldSignature, error) {
	b, err := f.RawSignature()
	if err != nil {
		return nil, err
	}
	return ParseFieldSignature(b)
}

// Param is a method parameter definition.
type Param struct{ entity }

func (img *Image) Param(row uint32) Param { return Param{entity{img: img, row: row}} }

func (p Param) Name() (string, error)      { return p.str(TableParam, "Name") }
func (p Param) Sequence() (uint16, error)  { v, err := p.col(TableParam, "Sequence"); return uint16(v), err }
func (p Param) Flags() (uint16, error)     { v, err := p.col(TableParam, "Flags"); return uint16(v), err }

// MethodDef is a method definition.
type MethodDef struct{ entity }

func (img *Image) MethodDef(row uint32) MethodDef { return MethodDef{entity{img: img, row: row}} }

func (m MethodDef) Name() (string, error)  { return m.str(TableMethodDef, "Name") }
func (m MethodDef) RVA() (uint32, error)   { return m.col(TableMethodDef, "RVA") }
func (m MethodDef) Flags() (uint16, error) { v, err := m.col(TableMethodDef, "Flags"); return uint16(v), err }
func (m MethodDef) RawSignature() ([]byte, error) {
	return m.blob(TableMethodDef, "Signature")
}
func (m MethodDef) Signature() (*MethodSignature, error) {
	b, err := m.RawSignature()
	if err != nil {
		return nil, err
	}
	return ParseMethodSignature(b)
}

// Params returns this method's Param rows.
func (m MethodDef) Params() ([]Param, error) {
	start, err := m.col(TableMethodDef, "ParamList")
	if err != nil {
		return nil, err
	}
	end, err := ownedRangeEnd(m.img, TableMethodDef, "ParamList", TableParam, m.row)
	if err != nil {
		return nil, err
	}
	out := make([]Param, 0, end-start)
	for r := start; r < end; r++ {
		out = append(out, Param{entity{img: m.img, row: r}})
	}
	return out, nil
}

// MemberRef is a reference to a field or method defined outside the
// current module.
type MemberRef struct{ entity }

func (img *Image) MemberRef(row uint32) MemberRef { return MemberRef{entity{img: img, row: row}} }

func (m MemberRef) Name() (string, error) { return m.str(TableMemberRef, "Name") }
func (m MemberRef) RawSignature() ([]byte, error) {
	return m.blob(TableMemberRef, "Signature")
}
func (m MemberRef) Class() (TableHandle, error) { return m.coded(TableMemberRef, "Class") }

// Assembly is the current assembly descriptor.
type Assembly struct{ entity }

func (img *Image) Assembly() (Assembly, error) {
	if img.Tables.RowCount(TableAssembly) == 0 {
		return Assembly{}, &Error{Kind: ErrMalformed, Detail: "missing Assembly row"}
	}
	return Assembly{entity{img: img, row: 1}}, nil
}

func (a Assembly) Name() (string, error)    { return a.str(TableAssembly, "Name") }
func (a Assembly) Culture() (string, error) { return a.str(TableAssembly, "Culture") }
func (a Assembly) PublicKey() ([]byte, error) {
	return a.blob(TableAssembly, "PublicKey")
}
func (a Assembly) Version() (major, minor, build, revision uint16, err error) {
	maj, err := a.col(TableAssembly, "MajorVersion")
	if err != nil {
		return
	}
	min, err := a.col(TableAssembly, "MinorVersion")
	if err != nil {
		return
	}
	bld, err := a.col(TableAssembly, "BuildNumber")
	if err != nil {
		return
	}
	rev, err := a.col(TableAssembly, "RevisionNumber")
	if err != nil {
		return
	}
	return uint16(maj), uint16(min), uint16(bld), uint16(rev), nil
}

// AssemblyRef is a reference to an external assembly.
type AssemblyRef struct{ entity }

func (img *Image) AssemblyRef(row uint32) AssemblyRef {
	return AssemblyRef{entity{img: img, row: row}}
}

func (a AssemblyRef) Name() (string, error)    { return a.str(TableAssemblyRef, "Name") }
func (a AssemblyRef) Culture() (string, error) { return a.str(TableAssemblyRef, "Culture") }
func (a AssemblyRef) PublicKeyOrToken() ([]byte, error) {
	return a.blob(TableAssemblyRef, "PublicKeyOrToken")
}

// CustomAttribute is a custom attribute application. Its Value blob uses
// the distinct fixed/named-argument encoding of ECMA-335 §II.23.3, which
// this package exposes raw rather than decoding: doing so correctly
// requires resolving the attribute constructor's parameter types first,
// which needs a type-loading layer this package doesn't have.
type CustomAttribute struct{ entity }

func (img *Image) CustomAttribute(row uint32) CustomAttribute {
	return CustomAttribute{entity{img: img, row: row}}
}

func (c CustomAttribute) Parent() (TableHandle, error) {
	return c.coded(TableCustomAttribute, "Parent")
}
func (c CustomAttribute) Type() (TableHandle, error) {
	return c.coded(TableCustomAttribute, "Type")
}
func (c CustomAttribute) RawValue() ([]byte, error) {
	return c.blob(TableCustomAttribute, "Value")
}

// CustomAttributesOn returns every CustomAttribute row whose Parent coded
// index resolves to the given handle. The CustomAttribute table isn't
// sorted in every assembly this package has seen, so this scans rather
// than binary-searching.
func (img *Image) CustomAttributesOn(target TableHandle) ([]CustomAttribute, error) {
	var out []CustomAttribute
	n := img.Tables.RowCount(TableCustomAttribute)
	for r := uint32(1); r <= n; r++ {
		ca := img.CustomAttribute(r)
		parent, err := ca.Parent()
		if err != nil {
			return nil, err
		}
		if parent == target {
			out = append(out, ca)
		}
	}
	return out, nil
}
