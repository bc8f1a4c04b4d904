package codegen

// Dialect captures the small set of syntactic differences between GPU
// compute languages the generator targets. Everything else in the emitted
// source is shared C-like syntax.
type Dialect struct {
	// Name identifies the dialect ("cuda", "opencl").
	Name string

	// Qualifier precedes the kernel function's return type.
	Qualifier string

	// GlobalPtr prefixes buffer pointer parameters. Empty for CUDA; OpenCL
	// requires an address-space qualifier.
	GlobalPtr string

	// LaneIndex is the expression yielding this lane's global index.
	LaneIndex string
}

// CUDA returns the dialect for NVCC-compiled kernels.
func CUDA() Dialect {
	return Dialect{
		Name:      "cuda",
		Qualifier: "__global__",
		GlobalPtr: "",
		LaneIndex: "blockIdx.x * blockDim.x + threadIdx.x",
	}
}

// OpenCL returns the dialect for OpenCL C kernels.
func OpenCL() Dialect {
	return Dialect{
		Name:      "opencl",
		Qualifier: "__kernel",
		GlobalPtr: "__global ",
		LaneIndex: "get_global_id(0)",
	}
}
