// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// ElementType is a signature type discriminator byte, ECMA-335 §II.23.1.16.
type ElementType byte

const (
	ElementTypeEnd         ElementType = 0x00
	ElementTypeVoid        ElementType = 0x01
	ElementTypeBoolean     ElementType = 0x02
	ElementTypeChar        ElementType = 0x03
	ElementTypeI1          ElementType = 0x04
	ElementTypeU1          ElementType = 0x05
	ElementTypeI2          ElementType = 0x06
	ElementTypeU2          ElementType = 0x07
	ElementTypeI4          ElementType = 0x08
	ElementTypeU4          ElementType = 0x09
	ElementTypeI8          ElementType = 0x0A
	ElementTypeU8          ElementType = 0x0B
	ElementTypeR4          ElementType = 0x0C
	ElementTypeR8          ElementType = 0x0D
	ElementTypeString      ElementType = 0x0E
	ElementTypePtr         ElementType = 0x0F
	ElementTypeByRef       ElementType = 0x10
	ElementTypeValueType   ElementType = 0x11
	ElementTypeClass       ElementType = 0x12
	ElementTypeVar         ElementType = 0x13
	ElementTypeArray       ElementType = 0x14
	ElementTypeGenericInst ElementType = 0x15
	ElementTypeTypedByRef  ElementType = 0x16
	ElementTypeI           ElementType = 0x18
	ElementTypeU           ElementType = 0x19
	ElementTypeFnPtr       ElementType = 0x1B
	ElementTypeObject      ElementType = 0x1C
	ElementTypeSzArray     ElementType = 0x1D
	ElementTypeMVar        ElementType = 0x1E
	ElementTypeSentinel    ElementType = 0x41

	modifierRequired ElementType = 0x1F
	modifierOptional ElementType = 0x20
)

// SignatureHeader is the leading byte of every signature blob.
type SignatureHeader byte

// Signature kinds, taken from the low nibble of the header whatever flag
// bits (GENERIC, HAS_THIS, EXPLICIT_THIS) the high nibble carries; method
// signatures additionally use the low nibble as a calling convention
// selector.
const (
	SigKindDefault               = 0x0
	SigKindCDecl                 = 0x1
	SigKindStdCall                = 0x2
	SigKindThisCall               = 0x3
	SigKindFastCall               = 0x4
	SigKindVarArg                 = 0x5
	SigKindField                  = 0x6
	SigKindLocalVar               = 0x7
	SigKindProperty                = 0x8
	SigKindMethodSpec              = 0xA

	// sigKindReserved (0x9) is unassigned; any signature header carrying
	// it is malformed.
	sigKindReserved = 0x9
)

const (
	sigFlagGeneric      = 0x10
	sigFlagHasThis      = 0x20
	sigFlagExplicitThis = 0x40
)

// Kind returns the low-nibble signature kind (calling convention, for
// method signatures).
func (h SignatureHeader) Kind() int {
	return int(h) & 0x0F
}

// IsGeneric reports whether the GENERIC bit is set.
func (h SignatureHeader) IsGeneric() bool {
	return int(h)&sigFlagGeneric != 0
}

// HasThis reports whether the HAS_THIS bit is set.
func (h SignatureHeader) HasThis() bool {
	return int(h)&sigFlagHasThis != 0
}

// ExplicitThis reports whether the EXPLICIT_THIS bit is set.
func (h SignatureHeader) ExplicitThis() bool {
	return int(h)&sigFlagExplicitThis != 0
}

// CustomModifier is a modopt/modreq annotation preceding a type in a
// signature.
type CustomModifier struct {
	Required bool
	Type     TableHandle
}

// ArrayShape describes a multi-dimensional array's rank, per-dimension
// sizes and lower bounds.
type ArrayShape struct {
	Rank        uint32
	Sizes       []uint32
	LowerBounds []int32
}

// Type is one node of a parsed signature type tree.
type Type struct {
	Kind ElementType

	// Elem is the pointee/element type for Ptr, ByRef, Array and SzArray.
	Elem *Type

	// Modifiers holds any modopt/modreq prefix read before this type.
	Modifiers []CustomModifier

	// TypeRef holds the referenced row for ValueType and Class.
	TypeRef TableHandle

	// GenericParamIndex holds the 0-based index for Var and MVar.
	GenericParamIndex uint32

	// Shape holds the dimensions for Array.
	Shape ArrayShape

	// GenericArgs holds the instantiation arguments for GenericInst; Elem
	// is the generic type being instantiated.
	GenericArgs []*Type

	// Method holds the callee signature for FnPtr.
	Method *MethodSignature
}

// Parameter is a single parameter or return type slot: zero or more
// custom modifiers followed by a type.
type Parameter struct {
	Modifiers []CustomModifier
	Type      *Type
}

// MethodSignature is a fully parsed method or property signature blob.
type MethodSignature struct {
	Header SignatureHeader

	// GenericParameterCount is populated only when Header.IsGeneric().
	GenericParameterCount uint32

	// RequiredParameterCount is the number of parameters that appear
	// before the varargs sentinel, or equal to len(Parameters) when there
	// is none.
	RequiredParameterCount uint32

	ReturnType Parameter
	Parameters []Parameter
}

// FieldSignature is a parsed field signature: modifiers followed by a type.
type FieldSignature struct {
	Modifiers []CustomModifier
	Type      *Type
}

// LocalVarSignature is a parsed standalone local variable signature.
type LocalVarSignature struct {
	Locals []Parameter
}

// ParseMethodSignature parses a method-or-property signature blob
// (MethodDef.Signature, MemberRef.Signature, or a property's Type blob
// when it carries a property signature instead of a field one).
func ParseMethodSignature(blob []byte) (*MethodSignature, error) {
	c := newCursor(blob)
	b, err := c.u8()
	if err != nil {
		return nil, err
	}
	header := SignatureHeader(b)
	if header.Kind() == sigKindReserved {
		return nil, &Error{Kind: ErrMalformed, Detail: "reserved signature kind 0x9"}
	}

	sig := &MethodSignature{Header: header}

	if header.IsGeneric() {
		n, err := readCompressedUint32(c)
		if err != nil {
			return nil, err
		}
		sig.GenericParameterCount = n
	}

	paramCount, err := readCompressedUint32(c)
	if err != nil {
		return nil, err
	}

	sig.ReturnType, err = readParameter(c)
	if err != nil {
		return nil, err
	}

	sig.RequiredParameterCount = paramCount
	sawSentinel := false
	for uint32(len(sig.Parameters)) < paramCount {
		b, err := c.peekByte()
		if err != nil {
			return nil, err
		}
		if ElementType(b) == ElementTypeSentinel && !sawSentinel {
			c.pos++
			sig.RequiredParameterCount = uint32(len(sig.Parameters))
			sawSentinel = true
			continue
		}
		p, err := readParameter(c)
		if err != nil {
			return nil, err
		}
		sig.Parameters = append(sig.Parameters, p)
	}

	return sig, nil
}

// ParseFieldSignature parses a field signature blob (Field.Signature).
func ParseFieldSignature(blob []byte) (*FieldSignature, error) {
	c := newCursor(blob)
	if _, err := c.u8(); err != nil { // 0x06 FIELD header, not otherwise needed
		return nil, err
	}
	mods, err := readModifiers(c)
	if err != nil {
		return nil, err
	}
	t, err := readType(c)
	if err != nil {
		return nil, err
	}
	return &FieldSignature{Modifiers: mods, Type: t}, nil
}

// ParseLocalVarSignature parses a standalone local variable signature
// blob (StandAloneSig.Signature, kind LOCAL_SIG).
func ParseLocalVarSignature(blob []byte) (*LocalVarSignature, error) {
	c := newCursor(blob)
	if _, err := c.u8(); err != nil { // 0x07 LOCAL_SIG header
		return nil, err
	}
	count, err := readCompressedUint32(c)
	if err != nil {
		return nil, err
	}
	locals := make([]Parameter, 0, count)
	for i := uint32(0); i < count; i++ {
		p, err := readParameter(c)
		if err != nil {
			return nil, err
		}
		locals = append(locals, p)
	}
	return &LocalVarSignature{Locals: locals}, nil
}

func readParameter(c *cursor) (Parameter, error) {
	mods, err := readModifiers(c)
	if err != nil {
		return Parameter{}, err
	}
	t, err := readType(c)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Modifiers: mods, Type: t}, nil
}

// readModifiers consumes zero or more modopt/modreq prefixes.
func readModifiers(c *cursor) ([]CustomModifier, error) {
	var mods []CustomModifier
	for {
		b, err := c.peekByte()
		if err != nil {
			return nil, err
		}
		et := ElementType(b)
		if et != modifierRequired && et != modifierOptional {
			return mods, nil
		}
		c.pos++
		h, err := readTypeDefOrRefOrSpecEncoded(c)
		if err != nil {
			return nil, err
		}
		mods = append(mods, CustomModifier{Required: et == modifierRequired, Type: h})
	}
}

// readTypeDefOrRefOrSpecEncoded decodes a compressed-u32 whose low 2 bits
// select TypeDef/TypeRef/TypeSpec and whose remaining bits are a 1-based
// row index.
func readTypeDefOrRefOrSpecEncoded(c *cursor) (TableHandle, error) {
	v, err := readCompressedUint32(c)
	if err != nil {
		return TableHandle{}, err
	}
	tables := []TableIndex{TableTypeDef, TableTypeRef, TableTypeSpec}
	tag := v & 0x3
	if int(tag) >= len(tables) {
		return TableHandle{}, &Error{Kind: ErrInvalidCodedIndex, Detail: "TypeDefOrRefOrSpecEncoded"}
	}
	return TableHandle{Table: tables[tag], Row: v >> 2}, nil
}

// readType parses one signature type node, recursing into its children.
func readType(c *cursor) (*Type, error) {
	b, err := c.u8()
	if err != nil {
		return nil, err
	}
	et := ElementType(b)

	switch et {
	case ElementTypeVoid, ElementTypeBoolean, ElementTypeChar,
		ElementTypeI1, ElementTypeU1, ElementTypeI2, ElementTypeU2,
		ElementTypeI4, ElementTypeU4, ElementTypeI8, ElementTypeU8,
		ElementTypeR4, ElementTypeR8, ElementTypeString, ElementTypeTypedByRef,
		ElementTypeI, ElementTypeU, ElementTypeObject:
		return &Type{Kind: et}, nil

	case ElementTypePtr:
		mods, err := readModifiers(c)
		if err != nil {
			return nil, err
		}
		// Ptr may terminate on Void without a further type node per the
		// base grammar; this package always expects an explicit type.
		elem, err := readType(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, Modifiers: mods, Elem: elem}, nil

	case ElementTypeByRef:
		elem, err := readType(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, Elem: elem}, nil

	case ElementTypeValueType, ElementTypeClass:
		h, err := readTypeDefOrRefOrSpecEncoded(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, TypeRef: h}, nil

	case ElementTypeVar, ElementTypeMVar:
		n, err := readCompressedUint32(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, GenericParamIndex: n}, nil

	case ElementTypeArray:
		elem, err := readType(c)
		if err != nil {
			return nil, err
		}
		shape, err := readArrayShape(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, Elem: elem, Shape: shape}, nil

	case ElementTypeSzArray:
		mods, err := readModifiers(c)
		if err != nil {
			return nil, err
		}
		elem, err := readType(c)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: et, Modifiers: mods, Elem: elem}, nil

	case ElementTypeGenericInst:
		generic, err := readType(c)
		if err != nil {
			return nil, err
		}
		n, err := readCompressedUint32(c)
		if err != nil {
			return nil, err
		}
		args := make([]*Type, 0, n)
		for i := uint32(0); i < n; i++ {
			arg, err := readType(c)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &Type{Kind: et, Elem: generic, GenericArgs: args}, nil

	case ElementTypeFnPtr:
		sub := &cursor{buf: c.buf, pos: c.pos}
		b, err := sub.u8()
		if err != nil {
			return nil, err
		}
		header := SignatureHeader(b)
		sig := &MethodSignature{Header: header}
		if header.IsGeneric() {
			n, err := readCompressedUint32(sub)
			if err != nil {
				return nil, err
			}
			sig.GenericParameterCount = n
		}
		paramCount, err := readCompressedUint32(sub)
		if err != nil {
			return nil, err
		}
		sig.ReturnType, err = readParameter(sub)
		if err != nil {
			return nil, err
		}
		sig.RequiredParameterCount = paramCount
		for uint32(len(sig.Parameters)) < paramCount {
			p, err := readParameter(sub)
			if err != nil {
				return nil, err
			}
			sig.Parameters = append(sig.Parameters, p)
		}
		c.pos = sub.pos
		return &Type{Kind: et, Method: sig}, nil

	default:
		return nil, &Error{Kind: ErrUnknownTypeCode, Detail: "element type"}
	}
}

func readArrayShape(c *cursor) (ArrayShape, error) {
	var shape ArrayShape
	rank, err := readCompressedUint32(c)
	if err != nil {
		return shape, err
	}
	shape.Rank = rank

	sizeCount, err := readCompressedUint32(c)
	if err != nil {
		return shape, err
	}
	shape.Sizes = make([]uint32, 0, sizeCount)
	for i := uint32(0); i < sizeCount; i++ {
		s, err := readCompressedUint32(c)
		if err != nil {
			return shape, err
		}
		shape.Sizes = append(shape.Sizes, s)
	}

	boundCount, err := readCompressedUint32(c)
	if err != nil {
		return shape, err
	}
	shape.LowerBounds = make([]int32, 0, boundCount)
	for i := uint32(0); i < boundCount; i++ {
		b, err := readCompressedInt32(c)
		if err != nil {
			return shape, err
		}
		shape.LowerBounds = append(shape.LowerBounds, b)
	}

	return shape, nil
}
