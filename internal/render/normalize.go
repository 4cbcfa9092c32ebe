package render

import (
	"strings"

	"mvdan.cc/gofumpt/format"
)

// NormalizeGo runs rendered output through gofumpt when the destination is a
// Go source file, stabilizing import order and formatting. It is safely
// skippable: non-Go destinations and unformattable content pass through
// unchanged, since a template may legitimately render a partial file.
func NormalizeGo(content []byte, destPath string) []byte {
	if !strings.HasSuffix(destPath, ".go") {
		return content
	}
	formatted, err := format.Source(content, format.Options{})
	if err != nil {
		return content
	}
	return formatted
}
