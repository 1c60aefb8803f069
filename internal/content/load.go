package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

const (
	siteFile = "site.yaml"
	postsDir = "posts"
)

//go:embed defaults
var defaultsFS embed.FS

// Default returns the content compiled into the binary.
func Default() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

type siteData struct {
	Title       string       `yaml:"title"`
	Profile     Profile      `yaml:"profile"`
	Categories  []Category   `yaml:"categories"`
	Projects    []Project    `yaml:"projects"`
	Skills      []Skill      `yaml:"skills"`
	Experiences []Experience `yaml:"experiences"`
}

type postMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Load reads site.yaml and posts/*.md from fsys and validates the result.
func Load(fsys fs.FS) (*Store, error) {
	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", siteFile, err)
	}
	var site siteData
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", siteFile, err)
	}
	if err := validateSite(&site); err != nil {
		return nil, err
	}

	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate post id %q", ErrInvalidContent, p.ID)
		}
		index[p.ID] = i
	}

	return &Store{
		title:       site.Title,
		profile:     site.Profile,
		posts:       posts,
		postIndex:   index,
		categories:  site.Categories,
		projects:    site.Projects,
		skills:      site.Skills,
		experiences: site.Experiences,
	}, nil
}

func validateSite(site *siteData) error {
	declared := make(map[Category]bool, len(site.Categories))
	for _, c := range site.Categories {
		if c == "" || c == CategoryAll {
			return fmt.Errorf("%w: category %q is reserved", ErrInvalidContent, c)
		}
		if declared[c] {
			return fmt.Errorf("%w: category %q declared twice", ErrInvalidContent, c)
		}
		declared[c] = true
	}
	for _, p := range site.Projects {
		if p.Title == "" {
			return fmt.Errorf("%w: project without title", ErrInvalidContent)
		}
		if !declared[p.Category] {
			return fmt.Errorf("%w: project %q has undeclared category %q", ErrInvalidContent, p.Title, p.Category)
		}
	}
	for _, s := range site.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: skill %q level %d outside 0-100", ErrInvalidContent, s.Name, s.Level)
		}
	}
	return nil
}

// loadPosts reads posts in lexical file name order.
func loadPosts(fsys fs.FS) ([]BlogPost, error) {
	names, err := fs.Glob(fsys, postsDir+"/*.md")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	posts := make([]BlogPost, 0, len(names))
	for _, name := range names {
		p, err := loadPost(fsys, name)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func loadPost(fsys fs.FS, name string) (BlogPost, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return BlogPost{}, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	var meta postMatter
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return BlogPost{}, fmt.Errorf("parsing front matter of %s: %w", name, err)
	}
	if meta.ID == "" {
		meta.ID = idFromFileName(name)
	}
	if meta.ID == "" || strings.ContainsAny(meta.ID, "/?#") {
		return BlogPost{}, fmt.Errorf("%w: %s has unusable id %q", ErrInvalidContent, name, meta.ID)
	}
	if meta.Title == "" {
		return BlogPost{}, fmt.Errorf("%w: %s has no title", ErrInvalidContent, name)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return BlogPost{}, fmt.Errorf("rendering %s: %w", name, err)
	}
	return BlogPost{
		ID:               meta.ID,
		Title:            meta.Title,
		Date:             meta.Date,
		ShortDescription: meta.Description,
		Content:          template.HTML(buf.String()),
	}, nil
}

// idFromFileName turns "01-nyu-experience.md" into "nyu-experience". Every
// leading numeric group is dropped, so "2023-12-01-news.md" becomes "news".
func idFromFileName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	for {
		i := strings.IndexByte(base, '-')
		if i <= 0 || i == len(base)-1 || strings.Trim(base[:i], "0123456789") != "" {
			return base
		}
		base = base[i+1:]
	}
}
