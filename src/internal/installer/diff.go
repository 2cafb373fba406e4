package installer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff describes the change from the current file state to the new one.
// current is nil when the file does not exist yet.
func Diff(path string, current []byte, currentMode os.FileMode, content []byte, mode os.FileMode) string {
	var sb strings.Builder

	if current != nil && currentMode.Perm() != mode.Perm() {
		sb.WriteString(fmt.Sprintf("mode change %o -> %o\n", currentMode.Perm(), mode.Perm()))
	}

	if bytes.Equal(current, content) && current != nil {
		return sb.String()
	}

	if isBinary(current) || isBinary(content) {
		sb.WriteString("Binary files differ\n")
		return sb.String()
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(content)),
		FromFile: path + " (current)",
		ToFile:   path + " (new)",
		Context:  3,
	})
	if err != nil {
		sb.WriteString(fmt.Sprintf("diff unavailable: %v\n", err))
		return sb.String()
	}
	sb.WriteString(text)
	return sb.String()
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}
