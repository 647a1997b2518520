package projects

import (
	"fmt"
	"html/template"
	"time"
)

var templateFuncs = template.FuncMap{
	"bytes":   formatBytes,
	"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
}

// formatBytes renders n with a binary unit, e.g. 1536 -> "1.5 KiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
