// Package textnorm normalizes learner answers and transcripts before comparison.
package textnorm

import "strings"

var stripper = strings.NewReplacer(".", "", ",", "", "?", "")

// Normalize lowercases s, removes '.', ',' and '?', collapses runs of
// whitespace to a single space and trims the ends.
func Normalize(s string) string {
	return strings.Join(Words(s), " ")
}

// Words returns the normalized words of s in order.
func Words(s string) []string {
	return strings.Fields(stripper.Replace(strings.ToLower(s)))
}
