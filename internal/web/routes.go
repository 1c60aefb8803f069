package web

import (
	"slices"

	"github.com/uditisharmaaa/portfolio/internal/nav"
)

// View names the page a request resolves to.
type View string

const (
	ViewPortfolio View = "portfolio"
	ViewBlog      View = "blog"
	ViewPost      View = "post"
	ViewNotFound  View = "not-found"
)

// Route is one entry of the page table. Paths are relative to the base path.
type Route struct {
	Path string
	View View
}

var pageRoutes = []Route{
	{Path: "/", View: ViewPortfolio},
	{Path: "/blog", View: ViewBlog},
	{Path: "/blog/:id", View: ViewPost},
}

// PageRoutes returns the page table. Anything it does not match renders
// ViewNotFound.
func PageRoutes() []Route { return slices.Clone(pageRoutes) }

// initialSection is the highlighted navigation entry when a view is opened.
func initialSection(v View) nav.Section {
	switch v {
	case ViewBlog, ViewPost:
		return nav.Blog
	default:
		return nav.Home
	}
}
