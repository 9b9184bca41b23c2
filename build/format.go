package build

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// contentHash returns the xxhash of a page's Markdown.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncatePath shortens a page path for progress output. Leading
// directories are replaced by ".../" until the path fits; a final segment
// that is still too long is cut from the left.
func TruncatePath(p string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(p) <= maxLen {
		return p
	}

	segs := strings.Split(p, "/")
	for i := 1; i < len(segs); i++ {
		if s := ".../" + strings.Join(segs[i:], "/"); len(s) <= maxLen {
			return s
		}
	}

	last := segs[len(segs)-1]
	switch {
	case len(last) <= maxLen:
		return last
	case maxLen < 4:
		return last[len(last)-maxLen:]
	default:
		return "..." + last[len(last)-maxLen+3:]
	}
}

// FormatBytes formats a size in bytes for display, e.g. "1.5 KB".
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KB", "MB", "GB"}
	size := float64(n) / 1024
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, units[unit])
}
