// internal/app/features/educationaid/views/views.go
package educationaidviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "educationaid",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
