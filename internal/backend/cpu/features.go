package cpu

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// features lists the SIMD extensions detected on the host, for diagnostics.
func features() string {
	var f []string
	if cpu.X86.HasAVX2 {
		f = append(f, "avx2")
	}
	if cpu.X86.HasFMA {
		f = append(f, "fma")
	}
	if cpu.X86.HasAVX512F {
		f = append(f, "avx512f")
	}
	if cpu.ARM64.HasASIMD {
		f = append(f, "asimd")
	}
	if cpu.ARM64.HasSVE {
		f = append(f, "sve")
	}
	return strings.Join(f, ",")
}
