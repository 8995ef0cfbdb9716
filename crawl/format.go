package crawl

import "fmt"

// TruncateSlug shortens a slug for display, keeping the end which is more informative.
func TruncateSlug(slug string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return slug[:min(len(slug), maxLen)]
	}
	if len(slug) <= maxLen {
		return slug
	}
	return "..." + slug[len(slug)-maxLen+3:]
}

// byteUnits are the display units for FormatBytes, in steps of 1024.
var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes formats a scrape size for the summary line, e.g. "1.5 MB".
// Sizes under 1 KB are shown as a whole number of bytes.
func FormatBytes(n int) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}
