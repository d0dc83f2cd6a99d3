package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into a lower-cased LIKE pattern matching it
// as a literal substring. Backslash is the default LIKE escape in both
// MySQL and PostgreSQL.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
