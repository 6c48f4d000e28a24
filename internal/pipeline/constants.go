package pipeline

// Storage sizes used for intermediate frame accounting.
const (
	bytesPerUint8   = 1
	bytesPerUint16  = 2
	bytesPerFloat32 = 4
)

// stageSeparator joins stage names in Info.Name.
const stageSeparator = " -> "
