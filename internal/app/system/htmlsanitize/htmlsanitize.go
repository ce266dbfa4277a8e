// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// strict strips all markup. User-supplied free text (donation descriptions,
// student stories, support details) is plain text in this application.
var strict = bluemonday.StrictPolicy()

// Strict returns s with all HTML removed.
func Strict(s string) string {
	return strict.Sanitize(s)
}
