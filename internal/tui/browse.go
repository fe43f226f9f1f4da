package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type browseLevel int

const (
	levelRegions browseLevel = iota
	levelCountries
	levelDocument
)

// BrowseView lets the user walk the aacrao/<region>/<country>.txt layout and
// read the scraped profiles directly.
type BrowseView struct {
	styles *Styles
	deps   *Deps

	level     browseLevel
	regions   []string
	region    string
	countries []string
	selected  int
	status    string

	vp      viewport.Model
	ready   bool
	width   int
	height  int
	docName string
}

// NewBrowseView creates the browser at the regions level.
func NewBrowseView(styles *Styles, deps *Deps) *BrowseView {
	return &BrowseView{styles: styles, deps: deps}
}

// Init loads the region list.
func (v *BrowseView) Init() tea.Cmd {
	return func() tea.Msg {
		regions, err := v.deps.Objects.ListPrefixes(context.Background(), "aacrao/")
		return regionsMsg{regions: regions, err: err}
	}
}

// SetSize resizes the document viewport.
func (v *BrowseView) SetSize(width, height int) {
	v.width = width
	v.height = height
	vpHeight := height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !v.ready {
		v.vp = viewport.New(width, vpHeight)
		v.ready = true
	} else {
		v.vp.Width = width
		v.vp.Height = vpHeight
	}
}

// Update handles navigation keys and loaded listings.
func (v *BrowseView) Update(msg tea.Msg) (*BrowseView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.level != levelDocument && v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.level != levelDocument && v.selected < len(v.items())-1 {
				v.selected++
			}
		case "enter":
			return v.open()
		case "esc", "backspace":
			return v.back(), nil
		}

	case regionsMsg:
		if msg.err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("Failed to list regions: %v", msg.err))
			return v, nil
		}
		v.regions = msg.regions
		v.status = ""
		return v, nil

	case countriesMsg:
		if msg.err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("Failed to list countries: %v", msg.err))
			return v, nil
		}
		v.level = levelCountries
		v.region = msg.region
		v.countries = msg.countries
		v.selected = 0
		v.status = ""
		return v, nil

	case documentMsg:
		if msg.err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("Failed to load profile: %v", msg.err))
			return v, nil
		}
		v.level = levelDocument
		v.docName = msg.title
		v.status = ""
		if v.ready {
			v.vp.SetContent(msg.content)
			v.vp.GotoTop()
		}
		return v, nil
	}

	if v.level == levelDocument && v.ready {
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *BrowseView) items() []string {
	if v.level == levelCountries {
		return v.countries
	}
	return v.regions
}

func (v *BrowseView) open() (*BrowseView, tea.Cmd) {
	items := v.items()
	if v.level == levelDocument || v.selected >= len(items) {
		return v, nil
	}
	choice := items[v.selected]

	if v.level == levelRegions {
		prefix := "aacrao/" + choice + "/"
		return v, func() tea.Msg {
			keys, err := v.deps.Objects.ListKeys(context.Background(), prefix)
			countries := make([]string, 0, len(keys))
			for _, key := range keys {
				name := strings.TrimSuffix(strings.TrimPrefix(key, prefix), ".txt")
				countries = append(countries, name)
			}
			return countriesMsg{region: choice, countries: countries, err: err}
		}
	}

	key := fmt.Sprintf("aacrao/%s/%s.txt", v.region, choice)
	return v, func() tea.Msg {
		data, err := v.deps.Objects.Get(context.Background(), key)
		return documentMsg{title: choice, content: string(data), err: err}
	}
}

func (v *BrowseView) back() *BrowseView {
	switch v.level {
	case levelDocument:
		v.level = levelCountries
	case levelCountries:
		v.level = levelRegions
		v.selected = 0
	}
	return v
}

// AtRoot reports whether esc should leave the browser entirely.
func (v *BrowseView) AtRoot() bool {
	return v.level == levelRegions
}

// View renders the current level.
func (v *BrowseView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("AACRAO EDGE Profiles"))
	b.WriteString("\n")

	switch v.level {
	case levelDocument:
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s / %s", v.region, v.docName)))
		b.WriteString("\n\n")
		if v.ready {
			b.WriteString(v.vp.View())
		}
	default:
		header := "Regions"
		if v.level == levelCountries {
			header = v.region
		}
		b.WriteString(v.styles.Subtitle.Render(header))
		b.WriteString("\n\n")

		items := v.items()
		if len(items) == 0 {
			b.WriteString(v.styles.Muted.Render("Nothing here yet."))
			b.WriteString("\n")
		}
		for i, item := range items {
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + item))
			} else {
				b.WriteString("  " + item)
			}
			b.WriteString("\n")
		}
	}

	if v.status != "" {
		b.WriteString("\n" + v.status + "\n")
	}
	b.WriteString(v.styles.Help.Render("enter open · esc back · ctrl+c quit"))
	return b.String()
}
