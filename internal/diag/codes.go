package diag

import "fmt"

// Code is a stable numeric identifier for a diagnostic kind. Codes are
// grouped in blocks per phase; the export layer owns the 4000 block.
type Code uint16

const (
	UnknownCode Code = 0

	// Pragma recorder.
	PragmaInfo         Code = 1500
	PragmaMalformed    Code = 1501
	PragmaUnterminated Code = 1502

	// Type export.
	ExportInfo                 Code = 4000
	ExportUnsupportedBuiltin   Code = 4001
	ExportUnion                Code = 4002
	ExportAnonymousStruct      Code = 4003
	ExportUndefinedStruct      Code = 4004
	ExportBitField             Code = 4005
	ExportPointerInStruct      Code = 4006
	ExportPointerToArray       Code = 4007
	ExportVectorNonPrimitive   Code = 4008
	ExportVectorBadLanes       Code = 4009
	ExportMultiDimArray        Code = 4010
	ExportVec3Array            Code = 4011
	ExportAnonymousType        Code = 4012
	ExportUnknownType          Code = 4013
	ExportFieldNotExportable   Code = 4014
	ExportInvalidMatrixStruct  Code = 4015
	ExportUnsupportedPrimitive Code = 4016
	ExportFlexibleArray        Code = 4017
	ExportObjectMember         Code = 4018
	ExportRecursiveStruct      Code = 4019
)

func (c Code) String() string {
	return fmt.Sprintf("SL%04d", uint16(c))
}
