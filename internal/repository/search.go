package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a free-text term into a LIKE pattern matching it
// anywhere. Wildcards typed by the user match literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
