package humanize

import "fmt"

func Size(i int64) (float64, string) {
	switch {
	case i < 1024:
		return float64(i), "B"
	case i < 1024*1024:
		return float64(i) / 1024, "KB"
	case i < 1024*1024*1024:
		return float64(i) / (1024 * 1024), "MB"
	default:
		return float64(i) / (1024 * 1024 * 1024), "GB"
	}
}

// Format renders a byte count for display, eg "3.4 MB".
func Format(i int64) string {
	v, unit := Size(i)

	if unit == "B" {
		return fmt.Sprintf("%d B", i)
	}

	return fmt.Sprintf("%.1f %s", v, unit)
}
