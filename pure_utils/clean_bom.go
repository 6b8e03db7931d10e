package pure_utils

import (
	"bufio"
	"io"
)

// utf8Bom is the byte order mark some spreadsheet tools prepend when
// exporting CSV.
var utf8Bom = []byte{0xef, 0xbb, 0xbf}

// NewReaderWithoutBom wraps r and silently drops a leading UTF-8 BOM, so CSV
// headers parse to clean column names whichever tool produced the file.
func NewReaderWithoutBom(r io.Reader) io.Reader {
	buf := bufio.NewReader(r)
	head, err := buf.Peek(3)
	if err != nil {
		// fewer than 3 bytes, nothing to strip
		return buf
	}
	if head[0] == utf8Bom[0] && head[1] == utf8Bom[1] && head[2] == utf8Bom[2] {
		_, _ = buf.Discard(3)
	}
	return buf
}
