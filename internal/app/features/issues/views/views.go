// internal/app/features/issues/views/views.go
package issueviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "issues",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
