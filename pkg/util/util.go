package util

import "strings"

// NormalizeKeyword returns the canonical spelling of a keyword supplied on
// the command line or in the config file (DBMS names, log formats).
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
