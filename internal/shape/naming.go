package shape

import "unicode"

// Apply transforms name according to n.
func (n NamingConvention) Apply(name string) string {
	if n != CamelCase {
		return name
	}
	return camelCase(name)
}

// camelCase lower-cases the leading run of upper-case letters. When the run
// is followed by a lower-case letter, the last upper-case letter starts the
// next word and is kept: "ID" -> "id", "URLPath" -> "urlPath", "Name" -> "name".
func camelCase(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return name
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
