// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcode narrows Unicode text to the repertoire of a single-byte
// character encoding. Characters the encoding cannot represent are dropped,
// never substituted. When narrowing fails the line falls back to plain ASCII.
package transcode

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	// ErrInvalidUTF8 is returned by Narrow for input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrUnknownEncoding is returned by New for an unsupported encoding name.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// charmaps maps accepted encoding names to their tables.
var charmaps = map[string]*charmap.Charmap{
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"latin9":       charmap.ISO8859_15,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
}

// Names returns the accepted encoding names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(charmaps))
}

// Transcoder narrows text to one charmap.
type Transcoder struct {
	name string
	cm   *charmap.Charmap
}

// New returns a Transcoder for the named encoding. Names are case-insensitive.
func New(name string) (*Transcoder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	cm, ok := charmaps[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return &Transcoder{name: key, cm: cm}, nil
}

// Name returns the normalized encoding name.
func (t *Transcoder) Name() string { return t.name }

// Charmap returns the underlying table.
func (t *Transcoder) Charmap() *charmap.Charmap { return t.cm }

// Representable reports whether r survives narrowing.
func (t *Transcoder) Representable(r rune) bool {
	_, ok := t.cm.EncodeRune(r)
	return ok
}

// Narrow encodes s into the target charmap, discarding unrepresentable
// characters, and decodes the result back to UTF-8. The returned string only
// contains runes the charmap can encode.
func (t *Transcoder) Narrow(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	drop := runes.Remove(runes.Predicate(func(r rune) bool {
		return !t.Representable(r)
	}))
	encoded, _, err := transform.String(transform.Chain(drop, t.cm.NewEncoder()), s)
	if err != nil {
		return "", fmt.Errorf("encoding to %s: %w", t.name, err)
	}
	decoded, err := t.cm.NewDecoder().String(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding from %s: %w", t.name, err)
	}
	return decoded, nil
}

// Encode narrows s and returns the raw single-byte form, the bytes a PDF
// core font expects.
func (t *Transcoder) Encode(s string) (string, error) {
	narrowed, err := t.Narrow(s)
	if err != nil {
		return "", err
	}
	return t.cm.NewEncoder().String(narrowed)
}

// ASCII removes every rune above U+007F, including bytes that are not valid
// UTF-8. It never fails.
func ASCII(s string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})), s)
	if err != nil {
		return ""
	}
	return out
}

// Line narrows one line. If the primary encoding fails it falls back to
// ASCII. dropped is the number of runes removed, each invalid byte counting
// as one rune.
func (t *Transcoder) Line(s string) (out string, dropped int, fellBack bool) {
	out, err := t.Narrow(s)
	if err != nil {
		out = ASCII(s)
		fellBack = true
	}
	return out, utf8.RuneCountInString(s) - utf8.RuneCountInString(out), fellBack
}
