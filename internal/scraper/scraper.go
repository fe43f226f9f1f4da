package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"askmira/internal/rag/storages/objectstore"
	"askmira/pkg/fetch"
	"askmira/pkg/logger"
)

// ListingEntry is one country profile discovered on the listing page.
type ListingEntry struct {
	Region string
	Name   string
	URL    string
}

// Scraper crawls the AACRAO EDGE country profiles and uploads one text file
// per country into the object store under aacrao/<region>/<country>.txt.
type Scraper struct {
	client  *fetch.Client
	store   *objectstore.Store
	baseURL string
	log     *logger.Logger
	now     func() time.Time
}

// New creates a Scraper. baseURL is the EDGE site root, e.g.
// "https://www.aacrao.org/edge".
func New(client *fetch.Client, store *objectstore.Store, baseURL string, log *logger.Logger) *Scraper {
	return &Scraper{
		client:  client,
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		now:     time.Now,
	}
}

// Run crawls the full listing and uploads every country profile it can
// extract. It returns how many profiles were uploaded and how many failed.
func (s *Scraper) Run(ctx context.Context) (int, int, error) {
	s.log.Info("Starting AACRAO EDGE scraper")

	listingURL := s.baseURL + "/country"
	page, err := s.client.Get(listingURL)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch listing page: %w", err)
	}

	entries, err := s.ParseListing(page)
	if err != nil {
		return 0, 0, fmt.Errorf("parse listing page: %w", err)
	}
	s.log.Info(fmt.Sprintf("Found %d country entries in total", len(entries)))

	successCount := 0
	errorCount := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return successCount, errorCount, err
		}

		s.log.Info(fmt.Sprintf("Scraping %s - %s", entry.Region, entry.Name))
		content, err := s.ScrapeCountry(entry.Name, entry.URL)
		if err != nil || content == "" {
			s.log.Warn(fmt.Sprintf("⚠️ No content for %s: %v", entry.Name, err))
			errorCount++
			continue
		}

		key := fmt.Sprintf("aacrao/%s/%s.txt", SanitizePathSegment(entry.Region), SanitizePathSegment(entry.Name))
		if err := s.store.PutText(ctx, key, content); err != nil {
			s.log.Error(fmt.Sprintf("Failed to upload %s: %v", entry.Name, err))
			errorCount++
			continue
		}
		successCount++

		if (successCount+errorCount)%10 == 0 {
			s.log.Info(fmt.Sprintf("Progress: %d/%d countries processed (ok=%d failed=%d)",
				successCount+errorCount, len(entries), successCount, errorCount))
		}
	}

	s.log.Info(fmt.Sprintf("Scraping complete. Successful: %d, Failed: %d", successCount, errorCount))
	return successCount, errorCount, nil
}

// ParseListing extracts every country link from the listing page HTML.
func (s *Scraper) ParseListing(page []byte) ([]ListingEntry, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	var entries []ListingEntry
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attrValue(n, "href")
		if href == "" || !strings.Contains(href, "/edge/country/") || strings.HasSuffix(href, "/edge/country/") {
			return
		}
		name := strings.TrimSpace(nodeText(n))
		if name == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		entries = append(entries, ListingEntry{
			Region: RegionFor(name),
			Name:   name,
			URL:    base.ResolveReference(ref).String(),
		})
	})
	return entries, nil
}

// ScrapeCountry fetches one profile page and renders it as a Markdown text
// document with a standard header.
func (s *Scraper) ScrapeCountry(name, pageURL string) (string, error) {
	page, err := s.client.Get(pageURL)
	if err != nil {
		return "", err
	}

	body, err := s.extractContent(page)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s Education System\n\n", name))
	b.WriteString(fmt.Sprintf("Source: %s\n", pageURL))
	b.WriteString(fmt.Sprintf("Scraped: %s\n\n", s.now().Format("2006-01-02 15:04:05")))
	b.WriteString(body)

	text := b.String()
	if len(strings.Split(text, "\n")) < 5 {
		s.log.Warn(fmt.Sprintf("Very little content found for %s", name))
	}
	return text, nil
}

// contentSelectors name the containers that usually hold the profile body,
// tried in order.
var contentSelectors = []func(*html.Node) bool{
	func(n *html.Node) bool { return n.Data == "div" && hasClass(n, "entry-content") },
	func(n *html.Node) bool { return n.Data == "div" && hasClass(n, "page-content") },
	func(n *html.Node) bool { return n.Data == "div" && hasClass(n, "main-content") },
	func(n *html.Node) bool { return n.Data == "article" },
	func(n *html.Node) bool { return n.Data == "main" },
}

// extractContent picks the main content container, converts its paragraphs,
// list items and headings to Markdown, and drops elements that look like
// navigation menus.
func (s *Scraper) extractContent(page []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return "", err
	}

	var container *html.Node
	for _, match := range contentSelectors {
		found := findNode(doc, match)
		if found != nil && len(strings.TrimSpace(nodeText(found))) > 100 {
			container = found
			break
		}
	}

	var elems []*html.Node
	if container == nil {
		// Fall back to every paragraph on the page.
		walk(doc, func(n *html.Node) {
			if n.Type == html.ElementNode && n.Data == "p" {
				elems = append(elems, n)
			}
		})
	} else {
		walk(container, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			switch n.Data {
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				elems = append(elems, n)
			}
		})
	}

	var b strings.Builder
	for _, elem := range elems {
		text := strings.TrimSpace(nodeText(elem))
		if text == "" {
			continue
		}
		if looksLikeNavigation(text) {
			continue
		}

		md, err := htmltomarkdown.ConvertString(renderNode(elem))
		if err != nil || strings.TrimSpace(md) == "" {
			md = text
		}
		b.WriteString(strings.TrimSpace(md))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// looksLikeNavigation reports whether a block of text mentions so many known
// countries that it is almost certainly a country menu, not profile content.
func looksLikeNavigation(text string) bool {
	matches := 0
	for country := range countryRegions {
		if strings.Contains(text, country) {
			matches++
			if matches > 5 {
				return true
			}
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findNode(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && match(n) {
			found = n
		}
	})
	return found
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
