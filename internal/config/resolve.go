package config

import "strings"

// Resolve returns the last non-nil layer value, or def.
func Resolve[T any](def T, values ...*T) T {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v != nil {
			if len(*v) == 0 {
				result = []string{}
				continue
			}
			result = cloneStrings(*v)
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(Resolve(def, values...))
}
