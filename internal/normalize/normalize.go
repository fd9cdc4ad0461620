// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize rewrites typographic punctuation to plain ASCII before a
// line is narrowed to a single-byte encoding.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Substitutions lists the punctuation replaced by Replace, in the order the
// replacements are applied.
var Substitutions = []string{
	"\u2013", "-",   // en dash
	"\u2014", "-",   // em dash
	"\u201c", `"`,   // left double quotation mark
	"\u201d", `"`,   // right double quotation mark
	"\u2018", "'",   // left single quotation mark
	"\u2019", "'",   // right single quotation mark
	"\u2026", "...", // horizontal ellipsis
	"\u2022", "-",   // bullet
}

var replacer = strings.NewReplacer(Substitutions...)

// Replace substitutes every character in Substitutions with its ASCII
// equivalent. Other characters are left untouched.
func Replace(s string) string {
	return replacer.Replace(s)
}

// Strip removes leading and trailing Unicode whitespace.
func Strip(s string) string {
	return strings.TrimSpace(s)
}

// Compose returns the NFC form of s. Combining sequences such as "e" +
// U+0301 become a single precomposed rune that a Latin charmap can encode.
func Compose(s string) string {
	return norm.NFC.String(s)
}
