package types

import "strings"

type Variant int // The system Variant used in emulation.

const (
	CHIP8     Variant = iota // CHIP8 - the COSMAC VIP baseline behaviour
	SuperCHIP                // SuperCHIP - the HP-48 SUPER-CHIP behaviour
)

var VariantNames = map[Variant]string{
	CHIP8:     "CHIP8",
	SuperCHIP: "SCHIP",
}

// StringToVariant converts a string to a Variant, defaulting
// to CHIP8 for unrecognized names.
func StringToVariant(s string) Variant {
	for v, n := range VariantNames {
		if n == strings.ToUpper(s) {
			return v
		}
	}

	return CHIP8
}

func (v Variant) String() string {
	return VariantNames[v]
}
