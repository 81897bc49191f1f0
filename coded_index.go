// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// codedIndexKind identifies one of the coded-index column types defined in
// ECMA-335 §II.24.2.6. Each kind packs a table tag into the low bits of a
// table-stream column value; the tag's meaning (which table it selects) is
// fixed per kind and given by its tables slice, in tag order.
type codedIndexKind struct {
	name   string
	tables []TableIndex
}

var (
	codedResolutionScope = codedIndexKind{
		name:   "ResolutionScope",
		tables: []TableIndex{TableModule, TableModuleRef, TableAssemblyRef, TableTypeRef},
	}
	codedTypeDefOrRef = codedIndexKind{
		name:   "TypeDefOrRef",
		tables: []TableIndex{TableTypeDef, TableTypeRef, TableTypeSpec},
	}
	codedMemberRefParent = codedIndexKind{
		name:   "MemberRefParent",
		tables: []TableIndex{TableTypeDef, TableTypeRef, TableModuleRef, TableMethodDef, TableTypeSpec},
	}
	codedHasConstant = codedIndexKind{
		name:   "HasConstant",
		tables: []TableIndex{TableField, TableParam, TableProperty},
	}
	codedHasCustomAttribute = codedIndexKind{
		name: "HasCustomAttribute",
		tables: []TableIndex{
			TableMethodDef, TableField, TableTypeRef, TableTypeDef, TableParam,
			TableInterfaceImpl, TableMemberRef, TableModule, TableDeclSecurity,
			TableProperty, TableEvent, TableStandAloneSig, TableModuleRef,
			TableTypeSpec, TableAssembly, TableAssemblyRef, TableFile,
			TableExportedType, TableManifestResource, TableGenericParam,
			TableGenericParamConstraint, TableMethodSpec,
		},
	}
	codedCustomAttributeType = codedIndexKind{
		name:   "CustomAttributeType",
		tables: []TableIndex{tableReserved, tableReserved, TableMethodDef, TableMemberRef, tableReserved},
	}
	codedHasFieldMarshal = codedIndexKind{
		name:   "HasFieldMarshal",
		tables: []TableIndex{TableField, TableParam},
	}
	codedHasDeclSecurity = codedIndexKind{
		name:   "HasDeclSecurity",
		tables: []TableIndex{TableTypeDef, TableMethodDef, TableAssembly},
	}
	codedHasSemantics = codedIndexKind{
		name:   "HasSemantics",
		tables: []TableIndex{TableEvent, TableProperty},
	}
	codedMethodDefOrRef = codedIndexKind{
		name:   "MethodDefOrRef",
		tables: []TableIndex{TableMethodDef, TableMemberRef},
	}
	codedMemberForwarded = codedIndexKind{
		name:   "MemberForwarded",
		tables: []TableIndex{TableField, TableMethodDef},
	}
	codedImplementation = codedIndexKind{
		name:   "Implementation",
		tables: []TableIndex{TableFile, TableAssemblyRef, TableExportedType},
	}
	codedTypeOrMethodDef = codedIndexKind{
		name:   "TypeOrMethodDef",
		tables: []TableIndex{TableTypeDef, TableMethodDef},
	}
)

// tagBits returns how many low bits of a column value this coded index
// spends on the table tag: ceil(log2(len(tables))).
func (k codedIndexKind) tagBits() uint {
	n := len(k.tables)
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

// decode splits a raw column value into a table tag and row number and
// resolves it to a handle. An out-of-range tag is a metadata invariant
// violation, not a missing table.
func (k codedIndexKind) decode(raw uint32) (TableHandle, error) {
	bits := k.tagBits()
	tag := raw & (1<<bits - 1)
	row := raw >> bits
	if int(tag) >= len(k.tables) || k.tables[tag] == tableReserved {
		return TableHandle{}, &Error{Kind: ErrInvalidCodedIndex, Detail: k.name}
	}
	return TableHandle{Table: k.tables[tag], Row: row}, nil
}
