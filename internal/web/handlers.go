package web

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uditisharmaaa/portfolio/internal/content"
	"github.com/uditisharmaaa/portfolio/internal/logging"
	"github.com/uditisharmaaa/portfolio/internal/nav"
)

type handlers struct {
	basePath string
	src      ContentSource
	searcher Searcher
}

func (h *handlers) forView(v View) gin.HandlerFunc {
	switch v {
	case ViewPortfolio:
		return h.portfolio
	case ViewBlog:
		return h.blog
	case ViewPost:
		return h.post
	default:
		return h.notFound
	}
}

// page returns the data every full page needs, merged with extra.
func (h *handlers) page(store *content.Store, v View, ctrl *nav.Controller, extra gin.H) gin.H {
	data := gin.H{
		"basePath":  h.basePath,
		"siteTitle": store.Title(),
		"profile":   store.Profile(),
		"view":      string(v),
		"nav":       ctrl.Menu(h.basePath, v == ViewPortfolio),
	}
	for k, val := range extra {
		data[k] = val
	}
	return data
}

// selectedCategory resolves the category query parameter. Anything outside
// the option set falls back to "all".
func selectedCategory(c *gin.Context, store *content.Store) content.Category {
	name := c.Query("category")
	if name == "" {
		return content.CategoryAll
	}
	category, ok := store.Category(name)
	if !ok {
		logging.FromContext(c.Request.Context()).Debug("unknown project category", slog.String("category", name))
		return content.CategoryAll
	}
	c.Set(categoryKey, string(category))
	return category
}

func (h *handlers) portfolio(c *gin.Context) {
	store := h.src.Store()
	category := selectedCategory(c, store)

	c.Set(viewKey, string(ViewPortfolio))
	c.HTML(http.StatusOK, "index.html", h.page(store, ViewPortfolio, nav.NewController(initialSection(ViewPortfolio)), gin.H{
		"categories":  store.Categories(),
		"selected":    category,
		"projects":    store.FilterProjects(category),
		"skills":      store.Skills(),
		"experiences": store.Experiences(),
	}))
}

func (h *handlers) blog(c *gin.Context) {
	store := h.src.Store()
	posts := store.Posts()
	query := strings.TrimSpace(c.Query("q"))

	searchFailed := false
	if query != "" && h.searcher != nil {
		ids, ok, err := h.searcher.Search(c.Request.Context(), query)
		switch {
		case err != nil:
			logging.FromContext(c.Request.Context()).Error("blog search failed",
				slog.String("query", query), slog.Any("error", err))
			searchFailed = true
		case ok:
			// Keep listing order; the index only decides membership.
			posts = slices.DeleteFunc(posts, func(p content.BlogPost) bool {
				return !slices.Contains(ids, p.ID)
			})
		}
	}

	c.Set(viewKey, string(ViewBlog))
	c.HTML(http.StatusOK, "blog.html", h.page(store, ViewBlog, nav.NewController(initialSection(ViewBlog)), gin.H{
		"pageTitle":     "Blog",
		"posts":         posts,
		"query":         query,
		"searchEnabled": h.searcher != nil,
		"searchFailed":  searchFailed,
	}))
}

func (h *handlers) post(c *gin.Context) {
	store := h.src.Store()
	ctrl := nav.NewController(initialSection(ViewPost))

	post, err := store.Post(c.Param("id"))
	if errors.Is(err, content.ErrPostNotFound) {
		c.Set(viewKey, string(ViewNotFound))
		c.HTML(http.StatusNotFound, "not-found.html", h.page(store, ViewPost, ctrl, gin.H{
			"pageTitle": "Post not found",
			"message":   "Post not found",
		}))
		return
	}

	c.Set(viewKey, string(ViewPost))
	c.Set(postKey, post.ID)
	c.HTML(http.StatusOK, "post.html", h.page(store, ViewPost, ctrl, gin.H{
		"pageTitle": post.Title,
		"post":      post,
	}))
}

func (h *handlers) notFound(c *gin.Context) {
	store := h.src.Store()

	c.Set(viewKey, string(ViewNotFound))
	c.HTML(http.StatusNotFound, "not-found.html", h.page(store, ViewNotFound, nav.NewController(initialSection(ViewNotFound)), gin.H{
		"pageTitle": "Page not found",
		"message":   "Page not found",
	}))
}

// projectGrid renders the project grid alone, for htmx filter swaps.
func (h *handlers) projectGrid(c *gin.Context) {
	store := h.src.Store()
	category := selectedCategory(c, store)

	c.HTML(http.StatusOK, "project-grid", gin.H{
		"basePath":   h.basePath,
		"categories": store.Categories(),
		"selected":   category,
		"projects":   store.FilterProjects(category),
	})
}

// navigation renders the navigation bar after one selection or scroll event.
func (h *handlers) navigation(c *gin.Context) {
	v := View(c.DefaultQuery("view", string(ViewPortfolio)))
	switch v {
	case ViewPortfolio, ViewBlog, ViewPost, ViewNotFound:
	default:
		c.String(http.StatusBadRequest, "unknown view %q", v)
		return
	}

	ctrl := nav.NewController(initialSection(v))
	if active := c.Query("active"); active != "" {
		section, err := nav.Parse(active)
		if err != nil {
			c.String(http.StatusBadRequest, "%s", err.Error())
			return
		}
		source := nav.Source(c.DefaultQuery("source", string(nav.SourceSelect)))
		if err := ctrl.Apply(source, section); err != nil {
			c.String(http.StatusBadRequest, "%s", err.Error())
			return
		}
	}

	c.HTML(http.StatusOK, "nav", gin.H{
		"basePath":  h.basePath,
		"siteTitle": h.src.Store().Title(),
		"view":      string(v),
		"nav":       ctrl.Menu(h.basePath, v == ViewPortfolio),
	})
}

func (h *handlers) health(c *gin.Context) {
	store := h.src.Store()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"posts":    len(store.Posts()),
		"projects": len(store.Projects()),
	})
}
