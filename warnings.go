package pdfpng

import (
	"fmt"
	"strings"
)

// Stages at which a Warning can be raised.
const (
	StageSource = "source"
	StageDecode = "decode"
	StageBuild  = "build"
)

// Warning is a non-fatal condition met while rendering. The image was
// still produced, possibly by the fallback decoder.
type Warning struct {
	Stage   string
	Message string
	Err     error
}

// String returns the warning as a single line.
func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Stage, w.Message, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
