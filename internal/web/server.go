// Package web serves the portfolio and blog pages with gin.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uditisharmaaa/portfolio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"even": func(i int) bool { return i%2 == 0 },
}).ParseFS(templateFS, "templates/*.html"))

// ContentSource hands out the current content snapshot.
type ContentSource interface {
	Store() *content.Store
}

// Searcher finds post ids for a free-text query. ok is false when the query
// carries no search terms.
type Searcher interface {
	Search(ctx context.Context, query string) (ids []string, ok bool, err error)
}

type Options struct {
	// BasePath prefixes every page, static and partial route, e.g. "/portfolio".
	BasePath string
	// ImagesDir is served under <BasePath>/images. Files are not checked.
	ImagesDir string
	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string
	Logger      *slog.Logger
}

// New builds the engine. searcher may be nil, which disables blog search.
func New(opts Options, src ContentSource, searcher Searcher) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestID(opts.Logger),
		accessLog(newSalt()),
		instrument(),
		secureHeaders(),
	)
	r.SetHTMLTemplate(templates)

	h := &handlers{basePath: opts.BasePath, src: src, searcher: searcher}

	g := r.Group(opts.BasePath)
	for _, rt := range pageRoutes {
		g.GET(rt.Path, h.forView(rt.View))
	}
	g.GET("/partials/projects", h.projectGrid)
	g.GET("/partials/nav", h.navigation)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	g.StaticFS("/static", http.FS(static))
	if opts.ImagesDir != "" {
		g.Static("/images", opts.ImagesDir)
	}

	r.GET("/healthz", h.health)
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	r.NoRoute(h.notFound)

	return r
}
