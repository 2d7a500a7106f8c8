package fs

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/unicode"
)

// ErrBinary is returned when a file does not look like text.
var ErrBinary = errors.New("binary content")

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// IsTextFile sniffs content and reports whether it is text. Empty content is text.
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	if detectUnicodeEncoding(content) != encodingUnknown {
		return true
	}
	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// DetectType returns the MIME type of the file at path, or "" if it cannot be read.
func DetectType(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return m.String()
}

// ReadTextPrefix returns at most maxRunes characters from the start of a text
// file. Binary files yield ErrBinary.
func ReadTextPrefix(path string, maxRunes int) (string, error) {
	if maxRunes <= 0 {
		return "", nil
	}
	// Worst case is four bytes per rune plus a BOM.
	limit := int64(maxRunes)*utf8.UTFMax + 4
	content, err := ReadFileHead(path, limit)
	if err != nil {
		return "", err
	}
	if int64(len(content)) == limit {
		content = trimPartialRune(content)
	}
	if !IsTextFile(content) {
		return "", ErrBinary
	}

	text := NormalizeTextContent(content)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text, nil
	}
	n := 0
	for i := range text {
		if n == maxRunes {
			return text[:i], nil
		}
		n++
	}
	return text, nil
}

// trimPartialRune drops a UTF-8 sequence cut off by a read limit.
func trimPartialRune(b []byte) []byte {
	for back := 1; back <= utf8.UTFMax && back <= len(b); back++ {
		start := len(b) - back
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if !utf8.FullRune(b[start:]) {
			return b[:start]
		}
		return b
	}
	return b
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

// NormalizeTextContent converts BOM-prefixed content into a plain UTF-8 string.
func NormalizeTextContent(content []byte) string {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
