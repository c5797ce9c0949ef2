package navigator

import (
	"fmt"
	"strings"
)

// MarkerClass gates the highlight styles: the style block is inert unless the
// page carries this class.
const MarkerClass = "srcjump-active"

var defaultStyles = map[string]string{
	"outline":           "2px dashed #4f7ef7",
	"outlineOffset":     "-2px",
	"cursor":            "crosshair",
	"tooltipBackground": "#1f2430",
	"tooltipColor":      "#e6e6e6",
	"tooltipFontSize":   "11px",
}

// styleSheet renders the session's style block: a hover outline on every
// annotated element plus a tooltip pseudo-element showing the display path.
func styleSheet(attrName string, overrides map[string]string) string {
	styles := make(map[string]string, len(defaultStyles))
	for k, v := range defaultStyles {
		styles[k] = v
	}
	for k, v := range overrides {
		styles[k] = v
	}

	var sheet strings.Builder
	fmt.Fprintf(&sheet, ".%s [%s] { position: relative; }\n", MarkerClass, attrName)
	fmt.Fprintf(&sheet, ".%s [%s]:hover { outline: %s; outline-offset: %s; cursor: %s; }\n",
		MarkerClass, attrName, styles["outline"], styles["outlineOffset"], styles["cursor"])
	fmt.Fprintf(&sheet,
		".%s [%s]:hover::after { content: attr(%s); position: absolute; bottom: 100%%; left: 0; "+
			"padding: 2px 6px; white-space: nowrap; z-index: 2147483647; "+
			"background: %s; color: %s; font-size: %s; }\n",
		MarkerClass, attrName, TooltipAttribute,
		styles["tooltipBackground"], styles["tooltipColor"], styles["tooltipFontSize"])
	return sheet.String()
}
