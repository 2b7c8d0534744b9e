package fileheader

import (
	"bytes"
	"strings"
)

// Style describes how comment lines are written in a file format.
type Style struct {
	// LinePrefix is put in front of every comment line.
	LinePrefix string
	// BlockStart and BlockEnd enclose the comment lines, both optional.
	BlockStart string
	BlockEnd   string
	// KeepDeclaration keeps a leading "<?xml ...?>" declaration above the header.
	KeepDeclaration bool
}

var (
	// HashStyle writes "# line" comments, e.g. for .any, .conf and .properties files.
	HashStyle = Style{LinePrefix: "# "}
	// BlockStyle writes a "/* ... */" block, e.g. for .json files.
	BlockStyle = Style{BlockStart: "/*", LinePrefix: " * ", BlockEnd: " */"}
	// XMLStyle writes a "<!-- ... -->" block below the XML declaration.
	XMLStyle = Style{BlockStart: "<!--", LinePrefix: "  ", BlockEnd: "-->", KeepDeclaration: true}
)

// Markers delimiting an applied header. Only comment lines between them
// belong to the header, other leading comments are part of the file body.
const (
	BeginMarker = "BEGIN GENERATED HEADER"
	EndMarker   = "END GENERATED HEADER"
)

// Render prepends the comment lines to body, enclosed in the header markers.
// An existing marked header is replaced, so rendering twice with the same
// lines is a no-op.
func (s Style) Render(lines []string, data []byte) []byte {
	decl, rest := s.splitDeclaration(data)
	_, body, _ := s.splitMarked(rest)

	var buf bytes.Buffer
	buf.Write(decl)
	if len(lines) > 0 {
		if s.BlockStart != "" {
			buf.WriteString(s.BlockStart + "\n")
		}
		buf.WriteString(s.commentLine(BeginMarker) + "\n")
		for _, l := range lines {
			buf.WriteString(s.commentLine(l) + "\n")
		}
		buf.WriteString(s.commentLine(EndMarker) + "\n")
		if s.BlockEnd != "" {
			buf.WriteString(s.BlockEnd + "\n")
		}
	}
	buf.Write(body)
	return buf.Bytes()
}

// SplitHeader separates a marked header written by Render from the rest of the data.
// The returned data keeps a leading XML declaration if the style preserves one.
func (s Style) SplitHeader(data []byte) (lines []string, rest []byte, found bool) {
	decl, afterDecl := s.splitDeclaration(data)
	lines, body, found := s.splitMarked(afterDecl)
	if !found {
		return nil, data, false
	}
	return lines, append(append([]byte{}, decl...), body...), true
}

// Split separates any leading comment of this style from the rest of the data,
// whether or not it carries the header markers.
func (s Style) Split(data []byte) (lines []string, rest []byte, found bool) {
	decl, afterDecl := s.splitDeclaration(data)
	lines, body, found := s.splitHeader(afterDecl)
	if !found {
		return nil, data, false
	}
	return lines, append(append([]byte{}, decl...), body...), true
}

func (s Style) commentLine(l string) string {
	return strings.TrimRight(s.LinePrefix+l, " ")
}

// splitMarked reads an optional block start, the begin marker, the header
// lines up to the end marker and the block end, one line each.
func (s Style) splitMarked(data []byte) ([]string, []byte, bool) {
	offset := 0
	next := func() (string, bool) {
		if offset >= len(data) {
			return "", false
		}
		var line string
		line, offset = nextLine(data, offset)
		return strings.TrimRight(line, " "), true
	}

	if s.BlockStart != "" {
		if l, ok := next(); !ok || l != strings.TrimRight(s.BlockStart, " ") {
			return nil, data, false
		}
	}
	if l, ok := next(); !ok || l != s.commentLine(BeginMarker) {
		return nil, data, false
	}

	lines := []string{}
	for {
		l, ok := next()
		if !ok {
			return nil, data, false
		}
		if l == s.commentLine(EndMarker) {
			break
		}
		lines = append(lines, trimPrefix(l, s.LinePrefix))
	}

	if s.BlockEnd != "" {
		if l, ok := next(); !ok || l != strings.TrimRight(s.BlockEnd, " ") {
			return nil, data, false
		}
	}
	return lines, data[offset:], true
}

func (s Style) splitDeclaration(data []byte) (decl, rest []byte) {
	if !s.KeepDeclaration || !bytes.HasPrefix(data, []byte("<?xml")) {
		return nil, data
	}
	end := bytes.Index(data, []byte("?>"))
	if end < 0 {
		return nil, data
	}
	end += len("?>")
	if end < len(data) && data[end] == '\r' {
		end++
	}
	if end < len(data) && data[end] == '\n' {
		end++
	}
	return data[:end], data[end:]
}

func (s Style) splitHeader(data []byte) ([]string, []byte, bool) {
	if s.BlockStart == "" {
		return s.splitLineComments(data)
	}
	return s.splitBlock(data)
}

func (s Style) splitLineComments(data []byte) ([]string, []byte, bool) {
	marker := strings.TrimRight(s.LinePrefix, " ")
	var (
		lines  []string
		offset int
	)
	for offset < len(data) {
		line, next := nextLine(data, offset)
		if !strings.HasPrefix(line, marker) {
			break
		}
		lines = append(lines, trimPrefix(line, s.LinePrefix))
		offset = next
	}
	if len(lines) == 0 {
		return nil, data, false
	}
	return lines, data[offset:], true
}

func (s Style) splitBlock(data []byte) ([]string, []byte, bool) {
	if !bytes.HasPrefix(data, []byte(s.BlockStart)) {
		return nil, data, false
	}
	endMarker := strings.TrimSpace(s.BlockEnd)
	end := bytes.Index(data[len(s.BlockStart):], []byte(endMarker))
	if end < 0 {
		return nil, data, false
	}
	end += len(s.BlockStart)

	raw := strings.Split(string(data[len(s.BlockStart):end]), "\n")
	// The block start and end markers sit on their own lines.
	if len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}
	if len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, trimPrefix(strings.TrimSuffix(l, "\r"), s.LinePrefix))
	}

	rest := end + len(endMarker)
	_, rest = nextLine(data, rest)
	return lines, data[rest:], true
}

// nextLine returns the line starting at offset without its line break and the offset of the following line.
func nextLine(data []byte, offset int) (string, int) {
	i := bytes.IndexByte(data[offset:], '\n')
	if i < 0 {
		return strings.TrimSuffix(string(data[offset:]), "\r"), len(data)
	}
	return strings.TrimSuffix(string(data[offset:offset+i]), "\r"), offset + i + 1
}

// trimPrefix strips the full prefix or, for blank comment lines, its trimmed form.
func trimPrefix(line, prefix string) string {
	if strings.HasPrefix(line, prefix) {
		return line[len(prefix):]
	}
	return strings.TrimPrefix(line, strings.TrimRight(prefix, " "))
}
