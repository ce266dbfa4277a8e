// internal/app/features/fooddonation/views/views.go
package fooddonationviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "fooddonation",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
