package scraper

import (
	"strings"
	"testing"

	"askmira/pkg/logger"
)

func TestRegionFor(t *testing.T) {
	cases := []struct {
		country string
		want    string
	}{
		{"Japan", "ASIA"},
		{"France", "EUROPE"},
		{"Canada: Quebec", "NORTH AMERICA"},
		{"New Zealand", "OCEANIA"},
		{"Brazil", "SOUTH AMERICA"},
		{"Nigeria", "AFRICA"},
		{"Atlantis", RegionUnknown},
	}
	for _, c := range cases {
		if got := RegionFor(c.country); got != c.want {
			t.Errorf("RegionFor(%q) = %q, want %q", c.country, got, c.want)
		}
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"NORTH AMERICA", "NORTH_AMERICA"},
		{"Côte d'Ivoire, (Republic of)", "C_te_d_Ivoire___Republic_of_"},
		{"Japan", "Japan"},
		{"Guinea-Bissau", "Guinea-Bissau"},
	}
	for _, c := range cases {
		if got := SanitizePathSegment(c.in); got != c.want {
			t.Errorf("SanitizePathSegment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func newTestScraper() *Scraper {
	return New(nil, nil, "https://www.aacrao.org/edge", logger.New("scraper_test", ""))
}

func TestParseListing(t *testing.T) {
	page := `<html><body>
		<a href="/edge/country/">All countries</a>
		<a href="/edge/country/japan">Japan</a>
		<a href="https://www.aacrao.org/edge/country/france">France</a>
		<a href="/edge/country/atlantis">Atlantis</a>
		<a href="/about">About</a>
	</body></html>`

	entries, err := newTestScraper().ParseListing([]byte(page))
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(entries), entries)
	}

	if entries[0].Name != "Japan" || entries[0].Region != "ASIA" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[0].URL != "https://www.aacrao.org/edge/country/japan" {
		t.Errorf("entry 0 URL = %q", entries[0].URL)
	}
	if entries[1].URL != "https://www.aacrao.org/edge/country/france" {
		t.Errorf("entry 1 URL = %q", entries[1].URL)
	}
	if entries[2].Region != RegionUnknown {
		t.Errorf("entry 2 region = %q", entries[2].Region)
	}
}

func TestExtractContentPrefersContainer(t *testing.T) {
	longIntro := strings.Repeat("The education system has three stages. ", 10)
	page := `<html><body>
		<p>Outside the container.</p>
		<div class="entry-content">
			<h2>Primary Education</h2>
			<p>` + longIntro + `</p>
			<li>Six years of primary school</li>
		</div>
	</body></html>`

	got, err := newTestScraper().extractContent([]byte(page))
	if err != nil {
		t.Fatalf("extractContent: %v", err)
	}
	if !strings.Contains(got, "## Primary Education") {
		t.Errorf("heading not converted:\n%s", got)
	}
	if !strings.Contains(got, "Six years of primary school") {
		t.Errorf("list item missing:\n%s", got)
	}
	if strings.Contains(got, "Outside the container.") {
		t.Errorf("content outside the container leaked in:\n%s", got)
	}
}

func TestExtractContentFallsBackToParagraphs(t *testing.T) {
	page := `<html><body><p>Short page with no container.</p></body></html>`

	got, err := newTestScraper().extractContent([]byte(page))
	if err != nil {
		t.Fatalf("extractContent: %v", err)
	}
	if !strings.Contains(got, "Short page with no container.") {
		t.Errorf("fallback paragraph missing:\n%s", got)
	}
}

func TestExtractContentSkipsNavigation(t *testing.T) {
	nav := "Japan France Germany Italy Spain Portugal Greece links"
	longBody := strings.Repeat("Credential evaluation details. ", 10)
	page := `<html><body><div class="entry-content">
		<p>` + nav + `</p>
		<p>` + longBody + `</p>
	</div></body></html>`

	got, err := newTestScraper().extractContent([]byte(page))
	if err != nil {
		t.Fatalf("extractContent: %v", err)
	}
	if strings.Contains(got, "links") {
		t.Errorf("navigation block not skipped:\n%s", got)
	}
	if !strings.Contains(got, "Credential evaluation details.") {
		t.Errorf("body paragraph missing:\n%s", got)
	}
}
