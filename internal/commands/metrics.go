package commands

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

const lineSeparator = "\n"

// FileMetrics holds the line and word count of a single text.
type FileMetrics struct {
	Lines int
	Words int
}

// CountText measures content. Lines is the number of segments produced by
// splitting on "\n", so empty content has one line and a trailing newline adds
// an empty final line. Words is the number of maximal non-whitespace runs.
func CountText(content string) FileMetrics {
	return FileMetrics{
		Lines: strings.Count(content, lineSeparator) + 1,
		Words: len(strings.FieldsFunc(content, unicode.IsSpace)),
	}
}

// CountFile reads the file at path and measures its content.
//
// #nosec G304
func CountFile(path string) (FileMetrics, error) {
	data, readError := os.ReadFile(path)
	if readError != nil {
		return FileMetrics{}, fmt.Errorf(errorReadFileFormat, path, readError)
	}
	return CountText(string(data)), nil
}
