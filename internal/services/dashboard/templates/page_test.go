package templates

import (
	"context"
	"strings"
	"testing"
)

func renderDashboard(t *testing.T, view DashboardView) string {
	t.Helper()
	var b strings.Builder
	if err := Dashboard(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestDashboardRendersProfileOptions(t *testing.T) {
	out := renderDashboard(t, DashboardView{Profiles: DefaultProfiles()})

	for _, want := range []string{
		`value="water"`,
		`value="mountain"`,
		`value="disaster"`,
		`value="reset" checked`,
		"Water Rescue",
		"Disaster or Individual Tracking",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}

func TestDashboardRendersDataContainers(t *testing.T) {
	out := renderDashboard(t, DashboardView{Profiles: DefaultProfiles()})

	for _, want := range []string{
		`id="datatable" data-endpoint="/api/animals"`,
		`id="graph" data-endpoint="/api/breeds"`,
		`id="map" data-endpoint="/api/animals/location"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}

func TestDashboardEscapesTitle(t *testing.T) {
	out := renderDashboard(t, DashboardView{Title: `<script>alert("x")</script>`})
	if strings.Contains(out, "<script>alert") {
		t.Fatal("title was not escaped")
	}
}

func TestDashboardDefaultTitle(t *testing.T) {
	out := renderDashboard(t, DashboardView{})
	if !strings.Contains(out, "Grazioso Salvare Dashboard") {
		t.Fatal("default title missing")
	}
}
