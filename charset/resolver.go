// Package charset resolves the text encoding of raw fetched bytes.
// Strategies are tried in order: the HTTP Content-Type header, a
// byte-order mark, a meta-tag sniff of the first 8KB, and finally a
// UTF-8 → Windows-1252 → Latin-1 fallback chain.
package charset

import (
	"bytes"
	"mime"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/clipper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// sniffLen bounds how far into the document the meta-tag sniff looks.
const sniffLen = 8192

// metaCharsetRe matches a charset declaration inside a meta tag, both
// the HTML5 form (<meta charset=utf-8>) and the http-equiv form
// (<meta http-equiv="Content-Type" content="text/html; charset=utf-8">).
var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?([a-zA-Z0-9_\-]+)`)

// Resolve decodes raw response bytes into a string using the first
// strategy that succeeds. It returns EENCODING only when every
// strategy, including the single-byte fallbacks, is exhausted.
func Resolve(body []byte, contentType string) (string, error) {
	// 1. charset parameter from the Content-Type header.
	if name := headerCharset(contentType); name != "" {
		if s, ok := decodeWith(name, body); ok {
			return s, nil
		}
	}

	// 2. Byte-order mark. UTF-32 marks are checked before UTF-16
	// because the UTF-32 LE mark starts with the UTF-16 LE mark.
	if enc, payload, ok := bomEncoding(body); ok {
		if out, err := enc.NewDecoder().Bytes(payload); err == nil {
			return string(out), nil
		}
	}

	// 3. Meta-tag sniff. The head is searched as raw bytes, which is
	// equivalent to a Latin-1 decode: byte positions of ASCII markup
	// are unmangled regardless of the actual encoding.
	head := body
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if m := metaCharsetRe.FindSubmatch(head); m != nil {
		if s, ok := decodeWith(string(m[1]), body); ok {
			return s, nil
		}
	}

	// 4. Fallback chain: UTF-8, Windows-1252, Latin-1.
	if utf8.Valid(body) {
		return string(body), nil
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(body); err == nil {
		return string(out), nil
	}
	if out, err := charmap.ISO8859_1.NewDecoder().Bytes(body); err == nil {
		return string(out), nil
	}

	return "", clipper.Errorf(clipper.EENCODING, "no decodable charset found")
}

// headerCharset extracts the charset parameter from a Content-Type
// header value, or returns "".
func headerCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// bomEncoding detects a byte-order mark and returns the matching
// encoding together with the payload after the mark.
func bomEncoding(body []byte) (encoding.Encoding, []byte, bool) {
	switch {
	case bytes.HasPrefix(body, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), body[4:], true
	case bytes.HasPrefix(body, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), body[4:], true
	case bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8, body[3:], true
	case bytes.HasPrefix(body, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), body[2:], true
	case bytes.HasPrefix(body, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), body[2:], true
	}
	return nil, nil, false
}

// decodeWith decodes body with the named charset. UTF-8 is validated
// rather than transformed so that undecodable payloads fall through to
// the next strategy instead of being silently replaced.
func decodeWith(name string, body []byte) (string, bool) {
	name = strings.TrimSpace(strings.Trim(name, `"'`))
	if name == "" {
		return "", false
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", false
	}
	canonical, err := htmlindex.Name(enc)
	if err == nil && canonical == "utf-8" {
		if !utf8.Valid(body) {
			return "", false
		}
		return string(body), true
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", false
	}
	return string(out), true
}
