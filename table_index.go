// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// TableIndex names one of the logical metadata tables defined by ECMA-335
// §II.22. Values match the table's #~ stream table-number exactly, so a
// TableIndex can be used directly as a bit position into the Valid/Sorted
// masks in the tables-stream header.
type TableIndex int

const (
	TableModule                 TableIndex = 0x00
	TableTypeRef                TableIndex = 0x01
	TableTypeDef                TableIndex = 0x02
	TableFieldPtr               TableIndex = 0x03
	TableField                  TableIndex = 0x04
	TableMethodPtr               TableIndex = 0x05
	TableMethodDef               TableIndex = 0x06
	TableParamPtr                TableIndex = 0x07
	TableParam                   TableIndex = 0x08
	TableInterfaceImpl            TableIndex = 0x09
	TableMemberRef                TableIndex = 0x0A
	TableConstant                 TableIndex = 0x0B
	TableCustomAttribute          TableIndex = 0x0C
	TableFieldMarshal             TableIndex = 0x0D
	TableDeclSecurity             TableIndex = 0x0E
	TableClassLayout              TableIndex = 0x0F
	TableFieldLayout              TableIndex = 0x10
	TableStandAloneSig            TableIndex = 0x11
	TableEventMap                 TableIndex = 0x12
	TableEventPtr                 TableIndex = 0x13
	TableEvent                    TableIndex = 0x14
	TablePropertyMap              TableIndex = 0x15
	TablePropertyPtr              TableIndex = 0x16
	TableProperty                 TableIndex = 0x17
	TableMethodSemantics          TableIndex = 0x18
	TableMethodImpl               TableIndex = 0x19
	TableModuleRef                TableIndex = 0x1A
	TableTypeSpec                 TableIndex = 0x1B
	TableImplMap                  TableIndex = 0x1C
	TableFieldRVA                 TableIndex = 0x1D
	TableENCLog                   TableIndex = 0x1E
	TableENCMap                   TableIndex = 0x1F
	TableAssembly                 TableIndex = 0x20
	TableAssemblyProcessor        TableIndex = 0x21
	TableAssemblyOS               TableIndex = 0x22
	TableAssemblyRef              TableIndex = 0x23
	TableAssemblyRefProcessor     TableIndex = 0x24
	TableAssemblyRefOS            TableIndex = 0x25
	TableFile                     TableIndex = 0x26
	TableExportedType             TableIndex = 0x27
	TableManifestResource         TableIndex = 0x28
	TableNestedClass              TableIndex = 0x29
	TableGenericParam             TableIndex = 0x2A
	TableMethodSpec               TableIndex = 0x2B
	TableGenericParamConstraint   TableIndex = 0x2C

	// tableCount bounds the fixed-size arrays this package keeps one slot
	// per table for (row counts, schemas, decoded rows). Portable-PDB
	// tables (0x30-0x37) aren't modeled and fall outside this range: a
	// nonzero Valid bit there surfaces as ErrUnsupportedTable.
	tableCount = 0x2D

	// tableReserved fills a coded-index tag slot ECMA-335 reserves rather
	// than assigns to a table. decode rejects any tag that resolves here.
	tableReserved TableIndex = -1
)

var tableNames = map[TableIndex]string{
	TableModule: "Module", TableTypeRef: "TypeRef", TableTypeDef: "TypeDef",
	TableFieldPtr: "FieldPtr", TableField: "Field", TableMethodPtr: "MethodPtr",
	TableMethodDef: "MethodDef", TableParamPtr: "ParamPtr", TableParam: "Param",
	TableInterfaceImpl: "InterfaceImpl", TableMemberRef: "MemberRef",
	TableConstant: "Constant", TableCustomAttribute: "CustomAttribute",
	TableFieldMarshal: "FieldMarshal", TableDeclSecurity: "DeclSecurity",
	TableClassLayout: "ClassLayout", TableFieldLayout: "FieldLayout",
	TableStandAloneSig: "StandAloneSig", TableEventMap: "EventMap",
	TableEventPtr: "EventPtr", TableEvent: "Event", TablePropertyMap: "PropertyMap",
	TablePropertyPtr: "PropertyPtr", TableProperty: "Property",
	TableMethodSemantics: "MethodSemantics", TableMethodImpl: "MethodImpl",
	TableModuleRef: "ModuleRef", TableTypeSpec: "TypeSpec", TableImplMap: "ImplMap",
	TableFieldRVA: "FieldRVA", TableENCLog: "ENCLog", TableENCMap: "ENCMap",
	TableAssembly: "Assembly", TableAssemblyProcessor: "AssemblyProcessor",
	TableAssemblyOS: "AssemblyOS", TableAssemblyRef: "AssemblyRef",
	TableAssemblyRefProcessor: "AssemblyRefProcessor", TableAssemblyRefOS: "AssemblyRefOS",
	TableFile: "File", TableExportedType: "ExportedType",
	TableManifestResource: "ManifestResource", TableNestedClass: "NestedClass",
	TableGenericParam: "GenericParam", TableMethodSpec: "MethodSpec",
	TableGenericParamConstraint: "GenericParamConstraint",
}

func (t TableIndex) String() string {
	if name, ok := tableNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TableHandle references a single row of a metadata table. Row is 1-based,
// matching ECMA-335's own indexing; a zero Row means "null reference".
type TableHandle struct {
	Table TableIndex
	Row   uint32
}

// IsNull reports whether the handle refers to no row at all, which is a
// valid value for most optional coded-index columns.
func (h TableHandle) IsNull() bool {
	return h.Row == 0
}
