// Package nav owns the "active section" state of the site navigation.
package nav

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownSection = errors.New("unknown section")

type Section string

const (
	Home     Section = "home"
	Projects Section = "projects"
	Skills   Section = "skills"
	Resume   Section = "resume"
	Blog     Section = "blog"
)

// Sections lists the navigation targets in menu order.
var Sections = []Section{Home, Projects, Skills, Resume, Blog}

// Source says which input produced the current state.
type Source string

const (
	SourceInitial Source = "initial"
	SourceSelect  Source = "select"
	SourceScroll  Source = "scroll"
)

// Parse validates a section name against the option set.
func Parse(name string) (Section, error) {
	s := Section(name)
	if !slices.Contains(Sections, s) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return s, nil
}

// Controller holds the active section. Selection and scroll observation are
// both plain writes, so whichever event arrived last decides the state.
// A Controller is not safe for concurrent use.
type Controller struct {
	active Section
	source Source
}

func NewController(initial Section) *Controller {
	return &Controller{active: initial, source: SourceInitial}
}

func (c *Controller) Active() Section { return c.active }

func (c *Controller) Source() Source { return c.source }

// Select records an explicit click on a navigation item.
func (c *Controller) Select(s Section) error { return c.set(s, SourceSelect) }

// Observe records that s is the page region currently in view.
func (c *Controller) Observe(s Section) error { return c.set(s, SourceScroll) }

// Apply dispatches on the event source. SourceInitial is not an event.
func (c *Controller) Apply(src Source, s Section) error {
	switch src {
	case SourceSelect:
		return c.Select(s)
	case SourceScroll:
		return c.Observe(s)
	default:
		return fmt.Errorf("unknown event source %q", src)
	}
}

func (c *Controller) set(s Section, src Source) error {
	if !slices.Contains(Sections, s) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	c.active = s
	c.source = src
	return nil
}

// Item is one rendered navigation entry.
type Item struct {
	Section Section
	Label   string
	Href    string
	Active  bool
}

// Menu renders the items. On the portfolio page sections are in-page
// anchors; elsewhere they point back at the portfolio page. Blog always
// links to the blog listing.
func (c *Controller) Menu(basePath string, onPortfolio bool) []Item {
	titler := cases.Title(language.English) // a Caser is stateful, never share one
	items := make([]Item, 0, len(Sections))
	for _, s := range Sections {
		var href string
		switch {
		case s == Blog:
			href = basePath + "/blog"
		case onPortfolio:
			href = "#" + string(s)
		default:
			href = basePath + "/#" + string(s)
		}
		items = append(items, Item{
			Section: s,
			Label:   titler.String(string(s)),
			Href:    href,
			Active:  s == c.active,
		})
	}
	return items
}
