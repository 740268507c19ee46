package image

// Category identifies one well-known property set.
type Category uint8

const (
	CategorySpecConstants Category = iota
	CategorySpecConstantsDefaultValues
	CategoryDeviceLibReqMask
	CategoryDeviceLibMetadata
	CategoryKernelParamOptInfo
	CategoryAssertUsed
	CategoryImplicitLocalArg
	CategoryProgramMetadata
	CategoryExportedSymbols
	CategoryImportedSymbols
	CategoryDeviceGlobals
	CategoryDeviceRequirements
	CategoryHostPipes
	CategoryVirtualFunctions
	CategoryRegisteredKernels
	CategoryMiscProperties

	numCategories
)

// Property set names as written by the offload wrapper.
const (
	SetSpecConstants              = "SYCL/specialization constants"
	SetSpecConstantsDefaultValues = "SYCL/specialization constants default values"
	SetDeviceLibReqMask           = "SYCL/devicelib req mask"
	SetDeviceLibMetadata          = "SYCL/devicelib metadata"
	SetKernelParamOptInfo         = "SYCL/kernel param opt"
	SetAssertUsed                 = "SYCL/assert used"
	SetImplicitLocalArg           = "SYCL/implicit local arg"
	SetProgramMetadata            = "SYCL/program metadata"
	SetExportedSymbols            = "SYCL/exported symbols"
	SetImportedSymbols            = "SYCL/imported symbols"
	SetDeviceGlobals              = "SYCL/device globals"
	SetDeviceRequirements         = "SYCL/device requirements"
	SetHostPipes                  = "SYCL/host pipes"
	SetVirtualFunctions           = "SYCL/virtual functions"
	SetRegisteredKernels          = "SYCL/registered kernels"
	SetMiscProperties             = "SYCL/misc properties"
)

var categoryNames = [numCategories]string{
	CategorySpecConstants:              SetSpecConstants,
	CategorySpecConstantsDefaultValues: SetSpecConstantsDefaultValues,
	CategoryDeviceLibReqMask:           SetDeviceLibReqMask,
	CategoryDeviceLibMetadata:          SetDeviceLibMetadata,
	CategoryKernelParamOptInfo:         SetKernelParamOptInfo,
	CategoryAssertUsed:                 SetAssertUsed,
	CategoryImplicitLocalArg:           SetImplicitLocalArg,
	CategoryProgramMetadata:            SetProgramMetadata,
	CategoryExportedSymbols:            SetExportedSymbols,
	CategoryImportedSymbols:            SetImportedSymbols,
	CategoryDeviceGlobals:              SetDeviceGlobals,
	CategoryDeviceRequirements:         SetDeviceRequirements,
	CategoryHostPipes:                  SetHostPipes,
	CategoryVirtualFunctions:           SetVirtualFunctions,
	CategoryRegisteredKernels:          SetRegisteredKernels,
	CategoryMiscProperties:             SetMiscProperties,
}

// String returns the property set name of the category.
func (c Category) String() string {
	if c >= numCategories {
		return "unknown"
	}

	return categoryNames[c]
}

// Categories returns all well-known categories in declaration order.
func Categories() []Category {
	cats := make([]Category, numCategories)
	for i := range cats {
		cats[i] = Category(i)
	}

	return cats
}
