package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// num formats a coordinate with fixed precision so output is reproducible.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// label formats a data value for display: "65", "12.5".
func label(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// textStyle is everything about a <text> element except its content and position.
type textStyle struct {
	size     float64
	color    theme.Color
	anchor   string // start, middle, end
	baseline string // auto, middle, hanging
	bold     bool
	rotate   float64
	class    string
}

func writeText(buf *bytes.Buffer, x, y float64, s string, st textStyle) {
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-size="%s" fill="%s"`, num(x), num(y), num(st.size), st.color)
	if st.anchor != "" && st.anchor != "start" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, st.anchor)
	}
	if st.baseline != "" && st.baseline != "auto" {
		fmt.Fprintf(buf, ` dominant-baseline="%s"`, st.baseline)
	}
	if st.bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if st.rotate != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, num(st.rotate), num(x), num(y))
	}
	if st.class != "" {
		fmt.Fprintf(buf, ` class="%s"`, st.class)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(s))
}

func anchorFor(a annotate.Align) string {
	switch a {
	case annotate.AlignLeft:
		return "start"
	case annotate.AlignRight:
		return "end"
	}
	return "middle"
}

func baselineFor(v annotate.VAlign) string {
	switch v {
	case annotate.VAlignTop:
		return "hanging"
	case annotate.VAlignMiddle:
		return "middle"
	}
	return "auto"
}
