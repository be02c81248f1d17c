package subtitles

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newLineReader decodes r as UTF-8, substituting U+FFFD for invalid bytes.
// A leading byte order mark is consumed; a UTF-16 BOM switches decoding to
// UTF-16 for the whole stream.
func newLineReader(r io.Reader) *bufio.Reader {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return bufio.NewReader(transform.NewReader(r, decoder))
}

// splitTerminator separates a line read with ReadString('\n') into its body
// and terminator ("\r\n", "\n", or "" at EOF).
func splitTerminator(line string) (string, string) {
	n := len(line)
	switch {
	case n >= 2 && line[n-2:] == "\r\n":
		return line[:n-2], "\r\n"
	case n >= 1 && line[n-1] == '\n':
		return line[:n-1], "\n"
	default:
		return line, ""
	}
}
