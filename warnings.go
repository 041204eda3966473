package redocx

import (
	"fmt"
	"strings"

	"github.com/luwenhao/redocx/model"
)

// Warning is a non-fatal degradation reported alongside a result.
type Warning = model.Warning

// FormatWarnings renders warnings as a human-readable block, one per
// line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteString("\n")
		}
		if w.Context != "" {
			fmt.Fprintf(&sb, "[%s] %s (%s)", w.Code, w.Message, w.Context)
		} else {
			fmt.Fprintf(&sb, "[%s] %s", w.Code, w.Message)
		}
	}
	return sb.String()
}
