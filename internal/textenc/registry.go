// Package textenc maps encoding names to codecs and resolves which encoding
// to use when a file is opened or saved.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	gdenc "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknownEncoding is returned for names no codec is registered for.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrMalformed is returned when bytes are not valid in the encoding.
	ErrMalformed = errors.New("malformed input for encoding")
	// ErrUnrepresentable is returned when text cannot be encoded losslessly.
	ErrUnrepresentable = errors.New("text not representable in encoding")
)

// Python-style spellings and names the indexes resolve to something else.
// "ascii" and "latin-1" must stay strict: htmlindex maps both to windows-1252.
var aliases = map[string]encoding.Encoding{
	"utf-8":      unicode.UTF8,
	"utf8":       unicode.UTF8,
	"u8":         unicode.UTF8,
	"utf-8-sig":  unicode.UTF8BOM,
	"ascii":      gdenc.ASCII,
	"us-ascii":   gdenc.ASCII,
	"646":        gdenc.ASCII,
	"latin-1":    gdenc.ISO8859_1,
	"latin1":     gdenc.ISO8859_1,
	"l1":         gdenc.ISO8859_1,
	"iso-8859-1": gdenc.ISO8859_1,
	"iso8859-1":  gdenc.ISO8859_1,
	"latin-9":    charmap.ISO8859_15,
	"latin9":     charmap.ISO8859_15,
	"ebcdic":     gdenc.EBCDIC,
	"cp037":      gdenc.EBCDIC,
	"utf-16":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16-le":  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16le":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16-be":  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(n, "_", "-")
}

// Lookup returns the codec registered under name.
func Lookup(name string) (encoding.Encoding, error) {
	n := normalizeName(name)
	if n == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}
	if enc, ok := aliases[n]; ok {
		return enc, nil
	}
	// ianaindex knows names it has no codec for and reports them as nil.
	if enc, err := ianaindex.IANA.Encoding(n); err == nil && enc != nil {
		return enc, nil
	}
	if strings.HasPrefix(n, "cp") {
		if enc, err := htmlindex.Get("windows-" + strings.TrimPrefix(n, "cp")); err == nil {
			return enc, nil
		}
	}
	if enc, err := htmlindex.Get(n); err == nil && n != "replacement" {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Known reports whether Lookup would succeed for name.
func Known(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Decode converts data to text using the named encoding. It fails rather
// than substituting replacement characters. CRLF line endings become LF.
func Decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, err := enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(back, data) {
			return "", fmt.Errorf("%w: %s", ErrMalformed, name)
		}
	}
	return normalizeNewlines(string(out)), nil
}

// Encode converts text to bytes in the named encoding. Encoders that
// silently substitute unsupported runes are caught by decoding the result
// back and comparing.
func Encode(text, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: %s: text is not valid UTF-8", ErrUnrepresentable, name)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnrepresentable, name, err)
	}
	back, err := enc.NewDecoder().Bytes(out)
	if err != nil || string(back) != text {
		return nil, fmt.Errorf("%w: %s", ErrUnrepresentable, name)
	}
	return out, nil
}

// normalizeNewlines turns CRLF and lone CR line endings into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RawText maps every byte of data to the rune with the same value, as
// ISO-8859-1 does, so any file becomes valid text. Saving that text as
// latin-1 writes the original bytes back, with LF line endings.
func RawText(data []byte) string {
	out, err := gdenc.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// unreachable, every byte has a mapping
		out = bytes.ToValidUTF8(data, []byte("\uFFFD"))
	}
	return normalizeNewlines(string(out))
}

// PlatformDefault returns the codeset named by the locale environment
// (LC_ALL, LC_CTYPE, LANG), or utf-8 when none is set or known.
func PlatformDefault() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if at := strings.IndexByte(v, '@'); at != -1 {
			v = v[:at]
		}
		dot := strings.IndexByte(v, '.')
		if dot == -1 {
			// first non-empty variable decides, like setlocale
			break
		}
		codeset := strings.ToLower(v[dot+1:])
		if Known(codeset) {
			return codeset
		}
		break
	}
	return "utf-8"
}
