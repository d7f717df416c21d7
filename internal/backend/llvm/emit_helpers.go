package llvm

import (
	"fmt"
	"math"
	"strings"
)

func formatLLVMBytes(data []byte, arrayLen int) string {
	var sb strings.Builder
	sb.WriteString("c\"")
	for i := range arrayLen {
		b := byte(0)
		if i < len(data) {
			b = data[i]
		}
		fmt.Fprintf(&sb, "\\%02X", b)
	}
	sb.WriteString("\"")
	return sb.String()
}

// formatFloat печатает double в hex-форме, её LLVM принимает без потерь.
func formatFloat(v float64) string {
	return fmt.Sprintf("0x%016X", math.Float64bits(v))
}

func isIntType(ty string) bool {
	switch ty {
	case "i1", "i8", "i32", "i64":
		return true
	}
	return false
}
