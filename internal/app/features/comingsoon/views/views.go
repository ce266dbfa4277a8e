// internal/app/features/comingsoon/views/views.go
package comingsoonviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "comingsoon",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
