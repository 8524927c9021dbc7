package pure_utils

import "strings"

const utf8Bom = "\ufeff"

// TrimBom removes a leading UTF-8 byte order mark, as written by spreadsheet exports.
func TrimBom(s string) string {
	return strings.TrimPrefix(s, utf8Bom)
}
