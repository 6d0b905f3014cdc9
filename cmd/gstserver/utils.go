package main

import "regexp"

var namespacePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)

// isValidNamespace reports whether name is a well-formed dot-separated
// label path, the same label shape the teacher validated domain names
// against before trusting them as a routing key.
func isValidNamespace(name string) bool {
	return namespacePattern.MatchString(name)
}
