package mdpage

import "bytes"

// StripFrontMatter removes a leading YAML (---), TOML (+++) or JSON (;;;)
// metadata block along with the blank lines that follow it. The block is only
// recognized when its first line looks like metadata and a closing delimiter
// exists; otherwise src is returned unchanged.
func StripFrontMatter(src []byte) []byte {
	open, next := cutLine(src, 0)
	delim, ok := frontMatterDelimiter(open)
	if !ok || next >= len(src) {
		return src
	}
	first, _ := cutLine(src, next)
	if !frontMatterMetadataLikely(first) {
		return src
	}
	for idx := next; idx < len(src); {
		line, after := cutLine(src, idx)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return bytes.TrimLeft(src[after:], "\r\n")
		}
		idx = after
	}
	return src
}

// cutLine returns the line starting at start without its terminator, and the
// offset of the following line.
func cutLine(src []byte, start int) ([]byte, int) {
	rest := src[start:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		return trimCR(rest), len(src)
	}
	return trimCR(rest[:i]), start + i + 1
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xEF\xBB\xBF"))
}
