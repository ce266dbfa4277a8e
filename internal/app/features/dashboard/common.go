// internal/app/features/dashboard/common.go
package dashboard

import "github.com/dalemusser/sevahub/internal/app/system/viewdata"

// Module is one tile on the general dashboard grid.
type Module struct {
	Title        string
	Description  string
	Path         string
	Live         bool
	AllowedRoles []string // empty means visible to every role
}

// modules is the full catalog. VisibleModules filters it per role.
var modules = []Module{
	{
		Title:       "Annamitra Seva",
		Description: "Share surplus food with people who need it.",
		Path:        "/food-donation",
		Live:        true,
	},
	{
		Title:       "Vidya Jyothi",
		Description: "Sponsor a student's education.",
		Path:        "/education-aid",
		Live:        true,
	},
	{
		Title:       "Suraksha Setu",
		Description: "Channel resources to partner NGOs.",
		Path:        "/ngo-support",
	},
	{
		Title:       "PunarAsha",
		Description: "Donate recyclable waste for reuse.",
		Path:        "/waste-donation",
	},
	{
		Title:       "Raksha Jyothi",
		Description: "Emergency rescue coordination.",
		Path:        "/emergency-rescue",
	},
	{
		Title:       "Jyothi Nilayam",
		Description: "Shelter management for people in need.",
		Path:        "/shelter",
	},
}

// VisibleModules returns the tiles the given role may open.
func VisibleModules(role string) []Module {
	var out []Module
	for _, m := range modules {
		if len(m.AllowedRoles) == 0 {
			out = append(out, m)
			continue
		}
		for _, allowed := range m.AllowedRoles {
			if role == allowed {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

type baseDashboardData struct {
	viewdata.BaseVM
	Modules []Module
}
