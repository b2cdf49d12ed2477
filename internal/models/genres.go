package models

import "strings"

// JoinGenres stores a genre list the way the genres column expects it.
// Entries are kept verbatim, including blanks and duplicates.
func JoinGenres(genres []string) string {
	return strings.Join(genres, ",")
}

// SplitGenres is the inverse of JoinGenres. An empty column yields an empty list.
func SplitGenres(genres string) []string {
	if genres == "" {
		return []string{}
	}
	return strings.Split(genres, ",")
}
