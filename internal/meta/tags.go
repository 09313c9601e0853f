package meta

import "strings"

// splitTokens breaks a tag value into comma-separated tokens. Commas inside
// a value can be avoided by using | lists (options, validate, fields).
func splitTokens(tag string) []string {
	var tokens []string
	for _, token := range strings.Split(tag, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// cutToken splits a key=value token. Bare tokens are boolean flags.
func cutToken(token string) (key, value string, hasValue bool) {
	key, value, hasValue = strings.Cut(token, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value), hasValue
}

// splitList splits a |-separated list value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, "|") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
