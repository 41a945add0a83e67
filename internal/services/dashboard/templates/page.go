// Package templates renders the dashboard page shell. Components are built
// programmatically; charts and the map hydrate client-side from the JSON API.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// ProfileOption is one rescue filter choice on the page.
type ProfileOption struct {
	// Value is the profile query value (water, mountain, disaster, reset).
	Value string
	// Label is the visible option text.
	Label string
	// Selected marks the default option.
	Selected bool
}

// DashboardView holds the data rendered into the page shell.
type DashboardView struct {
	// Title is the page heading.
	Title string
	// Profiles lists the rescue filter options.
	Profiles []ProfileOption
}

// DefaultProfiles returns the rescue filter options in display order.
func DefaultProfiles() []ProfileOption {
	return []ProfileOption{
		{Value: "water", Label: "Water Rescue"},
		{Value: "mountain", Label: "Mountain or Wilderness Rescue"},
		{Value: "disaster", Label: "Disaster or Individual Tracking"},
		{Value: "reset", Label: "Reset", Selected: true},
	}
}

// Dashboard renders the full dashboard page.
func Dashboard(view DashboardView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		title := view.Title
		if title == "" {
			title = "Grazioso Salvare Dashboard"
		}
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
<header class="branding">
<h3>%s</h3>
</header>
<hr>
`, html.EscapeString(title), html.EscapeString(title)); err != nil {
			return err
		}
		if err := writeProfileSelector(w, view.Profiles); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<hr>
<div id="datatable" data-endpoint="/api/animals"></div>
<br><hr>
<div class="row">
<div id="graph" data-endpoint="/api/breeds"></div>
<div id="map" data-endpoint="/api/animals/location"></div>
</div>
</body>
</html>
`)
		return err
	})
}

func writeProfileSelector(w io.Writer, profiles []ProfileOption) error {
	if _, err := io.WriteString(w, `<fieldset id="filter-type">
`); err != nil {
		return err
	}
	for _, profile := range profiles {
		checked := ""
		if profile.Selected {
			checked = " checked"
		}
		if _, err := fmt.Fprintf(w,
			`<label><input type="radio" name="profile" value="%s"%s> %s</label>
`,
			html.EscapeString(profile.Value), checked, html.EscapeString(profile.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</fieldset>
`)
	return err
}
