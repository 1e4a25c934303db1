package tagger

import (
	"strings"
	"unicode"
)

// Message is one analyzed input in its raw and normalized forms. Tokens are
// the lowercase word tokens that keyword matching runs against; punctuation
// never produces a token.
type Message struct {
	Raw        string
	Normalized string
	Tokens     []string
}

// NewMessage normalizes and tokenizes raw input. Any input is valid,
// including the empty string, which simply yields no tokens.
func NewMessage(raw string) Message {
	normalized := strings.ToLower(raw)
	return Message{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     Tokenize(normalized),
	}
}

// Tokenize splits text into lowercase word tokens. A token is a maximal run
// of letters, digits and underscores; everything else separates tokens.
// Intentionally naive: no stemming, so "pricing" never matches "price", and
// "don't" splits into "don" and "t".
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
