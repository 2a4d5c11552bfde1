// Package tokenizer splits people records and search keys into words.
// Splitting happens on the literal space character only: consecutive spaces
// produce empty words and nothing is trimmed, so a record's tokenization is
// an exact inverse of joining its words with " ".
package tokenizer

import "strings"

const separator = " "

// Split breaks text into its space-separated words, preserving case.
func Split(text string) []string {
	return strings.Split(text, separator)
}

// Fold returns the case-folded form of a word used as an index term.
func Fold(word string) string {
	return strings.ToLower(word)
}

// Terms returns the folded form of every word in text, in order.
func Terms(text string) []string {
	words := Split(text)
	for i, w := range words {
		words[i] = Fold(w)
	}
	return words
}
