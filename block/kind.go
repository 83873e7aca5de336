// Package block implements the fixed file prolog, the block
// table-of-contents, and the per-block 0x30-byte header that precedes
// every block body.
package block

// Kind identifies one of the nine block kinds a file's TOC can name.
type Kind uint32

// Block kind codes, as they appear in both the TOC and the first four
// bytes of every block header.
const (
	KindUnknown Kind = 0
	KindACQP    Kind = 0x00012000 // acquisition parameters
	KindSAMP    Kind = 0x00012001 // sample description
	KindGEOM    Kind = 0x00012002 // efficiency / geometry (read-through only)
	KindPROC    Kind = 0x00012003 // processing parameters
	KindDISP    Kind = 0x00012004 // display (read-through only)
	KindSPEC    Kind = 0x00012005 // channel-count spectrum
	KindPEAK    Kind = 0x00012006 // peak list
	KindNUCL    Kind = 0x00012007 // nuclide list
	KindNLINES  Kind = 0x00012008 // gamma-line list
)

func (k Kind) String() string {
	switch k {
	case KindACQP:
		return "ACQP"
	case KindSAMP:
		return "SAMP"
	case KindGEOM:
		return "GEOM"
	case KindPROC:
		return "PROC"
	case KindDISP:
		return "DISP"
	case KindSPEC:
		return "SPEC"
	case KindPEAK:
		return "PEAK"
	case KindNUCL:
		return "NUCL"
	case KindNLINES:
		return "NLINES"
	default:
		return "Unknown"
	}
}

// EfficiencyModel enumerates the named curve-fit families a GEOM
// block's model string can hold.
type EfficiencyModel int

const (
	EfficiencyModelUnknown EfficiencyModel = iota
	EfficiencyModelSpline
	EfficiencyModelEmpirical
	EfficiencyModelAverage
	EfficiencyModelDual
	EfficiencyModelLinear
)

func (m EfficiencyModel) String() string {
	switch m {
	case EfficiencyModelSpline:
		return "SPLINE"
	case EfficiencyModelEmpirical:
		return "EMPIRICAL"
	case EfficiencyModelAverage:
		return "AVERAGE"
	case EfficiencyModelDual:
		return "DUAL"
	case EfficiencyModelLinear:
		return "LINEAR"
	default:
		return "Unknown"
	}
}

// ParseEfficiencyModel maps a model-name string read from a GEOM block
// to its enum value, degrading to EfficiencyModelUnknown rather than
// failing.
func ParseEfficiencyModel(name string) EfficiencyModel {
	switch name {
	case "SPLINE":
		return EfficiencyModelSpline
	case "EMPIRICAL":
		return EfficiencyModelEmpirical
	case "AVERAGE":
		return EfficiencyModelAverage
	case "DUAL":
		return EfficiencyModelDual
	case "LINEAR":
		return EfficiencyModelLinear
	default:
		return EfficiencyModelUnknown
	}
}
