// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// tableSchemas gives the column layout of every table this package
// models, in the fixed field order ECMA-335 §II.22 defines for each. The
// *Ptr tables exist only in uncompressed (#-) metadata; they are modeled
// so a reader encountering one doesn't fail outright, even though this
// package's entity facades never need to follow them (compressed #~
// metadata, which is what the overwhelming majority of assemblies carry,
// omits them entirely in favor of dense FieldList/MethodList/ParamList
// ranges).
var tableSchemas = map[TableIndex][]column{
	TableModule: {
		{name: "Generation", kind: colU16},
		{name: "Name", kind: colStringHeap},
		{name: "Mvid", kind: colGUIDHeap},
		{name: "EncId", kind: colGUIDHeap},
		{name: "EncBaseId", kind: colGUIDHeap},
	},
	TableTypeRef: {
		{name: "ResolutionScope", kind: colCodedIndex, coded: codedResolutionScope},
		{name: "Name", kind: colStringHeap},
		{name: "Namespace", kind: colStringHeap},
	},
	TableTypeDef: {
		{name: "Flags", kind: colU32},
		{name: "Name", kind: colStringHeap},
		{name: "Namespace", kind: colStringHeap},
		{name: "Extends", kind: colCodedIndex, coded: codedTypeDefOrRef},
		{name: "FieldList", kind: colSimpleIndex, target: TableField},
		{name: "MethodList", kind: colSimpleIndex, target: TableMethodDef},
	},
	TableFieldPtr: {
		{name: "Field", kind: colSimpleIndex, target: TableField},
	},
	TableField: {
		{name: "Flags", kind: colU16},
		{name: "Name", kind: colStringHeap},
		{name: "Signature", kind: colBlobHeap},
	},
	TableMethodPtr: {
		{name: "Method", kind: colSimpleIndex, target: TableMethodDef},
	},
	TableMethodDef: {
		{name: "RVA", kind: colU32},
		{name: "ImplFlags", kind: colU16},
		{name: "Flags", kind: colU16},
		{name: "Name", kind: colStringHeap},
		{name: "Signature", kind: colBlobHeap},
		{name: "ParamList", kind: colSimpleIndex, target: TableParam},
	},
	TableParamPtr: {
		{name: "Param", kind: colSimpleIndex, target: TableParam},
	},
	TableParam: {
		{name: "Flags", kind: colU16},
		{name: "Sequence", kind: colU16},
		{name: "Name", kind: colStringHeap},
	},
	TableInterfaceImpl: {
		{name: "Class", kind: colSimpleIndex, target: TableTypeDef},
		{name: "Interface", kind: colCodedIndex, coded: codedTypeDefOrRef},
	},
	TableMemberRef: {
		{name: "Class", kind: colCodedIndex, coded: codedMemberRefParent},
		{name: "Name", kind: colStringHeap},
		{name: "Signature", kind: colBlobHeap},
	},
	TableConstant: {
		{name: "Type", kind: colU16},
		{name: "Parent", kind: colCodedIndex, coded: codedHasConstant},
		{name: "Value", kind: colBlobHeap},
	},
	TableCustomAttribute: {
		{name: "Parent", kind: colCodedIndex, coded: codedHasCustomAttribute},
		{name: "Type", kind: colCodedIndex, coded: codedCustomAttributeType},
		{name: "Value", kind: colBlobHeap},
	},
	TableFieldMarshal: {
		{name: "Parent", kind: colCodedIndex, coded: codedHasFieldMarshal},
		{name: "NativeType", kind: colBlobHeap},
	},
	TableDeclSecurity: {
		{name: "Action", kind: colU16},
		{name: "Parent", kind: colCodedIndex, coded: codedHasDeclSecurity},
		{name: "PermissionSet", kind: colBlobHeap},
	},
	TableClassLayout: {
		{name: "PackingSize", kind: colU16},
		{name: "ClassSize", kind: colU32},
		{name: "Parent", kind: colSimpleIndex, target: TableTypeDef},
	},
	TableFieldLayout: {
		{name: "Offset", kind: colU32},
		{name: "Field", kind: colSimpleIndex, target: TableField},
	},
	TableStandAloneSig: {
		{name: "Signature", kind: colBlobHeap},
	},
	TableEventMap: {
		{name: "Parent", kind: colSimpleIndex, target: TableTypeDef},
		{name: "EventList", kind: colSimpleIndex, target: TableEvent},
	},
	TableEventPtr: {
		{name: "Event", kind: colSimpleIndex, target: TableEvent},
	},
	TableEvent: {
		{name: "EventFlags", kind: colU16},
		{name: "Name", kind: colStringHeap},
		{name: "EventType", kind: colCodedIndex, coded: codedTypeDefOrRef},
	},
	TablePropertyMap: {
		{name: "Parent", kind: colSimpleIndex, target: TableTypeDef},
		{name: "PropertyList", kind: colSimpleIndex, target: TableProperty},
	},
	TablePropertyPtr: {
		{name: "Property", kind: colSimpleIndex, target: TableProperty},
	},
	TableProperty: {
		{name: "Flags", kind: colU16},
		{name: "Name", kind: colStringHeap},
		{name: "Type", kind: colBlobHeap},
	},
	TableMethodSemantics: {
		{name: "Semantics", kind: colU16},
		{name: "Method", kind: colSimpleIndex, target: TableMethodDef},
		{name: "Association", kind: colCodedIndex, coded: codedHasSemantics},
	},
	TableMethodImpl: {
		{name: "Class", kind: colSimpleIndex, target: TableTypeDef},
		{name: "MethodBody", kind: colCodedIndex, coded: codedMethodDefOrRef},
		{name: "MethodDeclaration", kind: colCodedIndex, coded: codedMethodDefOrRef},
	},
	TableModuleRef: {
		{name: "Name", kind: colStringHeap},
	},
	TableTypeSpec: {
		{name: "Signature", kind: colBlobHeap},
	},
	TableImplMap: {
		{name: "MappingFlags", kind: colU16},
		{name: "MemberForwarded", kind: colCodedIndex, coded: codedMemberForwarded},
		{name: "ImportName", kind: colStringHeap},
		{name: "ImportScope", kind: colSimpleIndex, target: TableModuleRef},
	},
	TableFieldRVA: {
		{name: "RVA", kind: colU32},
		{name: "Field", kind: colSimpleIndex, target: TableField},
	},
	TableENCLog: {
		{name: "Token", kind: colU32},
		{name: "FuncCode", kind: colU32},
	},
	TableENCMap: {
		{name: "Token", kind: colU32},
	},
	TableAssembly: {
		{name: "HashAlgId", kind: colU32},
		{name: "MajorVersion", kind: colU16},
		{name: "MinorVersion", kind: colU16},
		{name: "BuildNumber", kind: colU16},
		{name: "RevisionNumber", kind: colU16},
		{name: "Flags", kind: colU32},
		{name: "PublicKey", kind: colBlobHeap},
		{name: "Name", kind: colStringHeap},
		{name: "Culture", kind: colStringHeap},
	},
	TableAssemblyProcessor: {
		{name: "Processor", kind: colU32},
	},
	TableAssemblyOS: {
		{name: "OSPlatformID", kind: colU32},
		{name: "OSMajorVersion", kind: colU32},
		{name: "OSMinorVersion", kind: colU32},
	},
	TableAssemblyRef: {
		{name: "MajorVersion", kind: colU16},
		{name: "MinorVersion", kind: colU16},
		{name: "BuildNumber", kind: colU16},
		{name: "RevisionNumber", kind: colU16},
		{name: "Flags", kind: colU32},
		{name: "PublicKeyOrToken", kind: colBlobHeap},
		{name: "Name", kind: colStringHeap},
		{name: "Culture", kind: colStringHeap},
		{name: "HashValue", kind: colBlobHeap},
	},
	TableAssemblyRefProcessor: {
		{name: "Processor", kind: colU32},
		{name: "AssemblyRef", kind: colSimpleIndex, target: TableAssemblyRef},
	},
	TableAssemblyRefOS: {
		{name: "OSPlatformID", kind: colU32},
		{name: "OSMajorVersion", kind: colU32},
		{name: "OSMinorVersion", kind: colU32},
		{name: "AssemblyRef", kind: colSimpleIndex, target: TableAssemblyRef},
	},
	TableFile: {
		{name: "Flags", kind: colU32},
		{name: "Name", kind: colStringHeap},
		{name: "HashValue", kind: colBlobHeap},
	},
	TableExportedType: {
		{name: "Flags", kind: colU32},
		{name: "TypeDefId", kind: colU32},
		{name: "TypeName", kind: colStringHeap},
		{name: "TypeNamespace", kind: colStringHeap},
		{name: "Implementation", kind: colCodedIndex, coded: codedImplementation},
	},
	TableManifestResource: {
		{name: "Offset", kind: colU32},
		{name: "Flags", kind: colU32},
		{name: "Name", kind: colStringHeap},
		{name: "Implementation", kind: colCodedIndex, coded: codedImplementation},
	},
	TableNestedClass: {
		{name: "NestedClass", kind: colSimpleIndex, target: TableTypeDef},
		{name: "EnclosingClass", kind: colSimpleIndex, target: TableTypeDef},
	},
	TableGenericParam: {
		{name: "Number", kind: colU16},
		{name: "Flags", kind: colU16},
		{name: "Owner", kind: colCodedIndex, coded: codedTypeOrMethodDef},
		{name: "Name", kind: colStringHeap},
	},
	TableMethodSpec: {
		{name: "Method", kind: colCodedIndex, coded: codedMethodDefOrRef},
		{name: "Instantiation", kind: colBlobHeap},
	},
	TableGenericParamConstraint: {
		{name: "Owner", kind: colSimpleIndex, target: TableGenericParam},
		{name: "Constraint", kind: colCodedIndex, coded: codedTypeDefOrRef},
	},
}
