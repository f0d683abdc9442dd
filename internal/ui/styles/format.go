package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// TruncateString cuts s to maxWidth cells, ending with "..." when it had
// to cut. ANSI sequences are kept intact.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// FormatStars renders a rating out of three, e.g. "★★☆".
func FormatStars(stars int) string {
	stars = min(max(stars, 0), 3)
	return StarStyle.Render(strings.Repeat("★", stars)) +
		EmptyStarStyle.Render(strings.Repeat("☆", 3-stars))
}

// FormatElapsed renders a duration as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
