// Package content holds the site's static records: profile, blog posts,
// projects, skills and resume experiences.
//
// A Store is an immutable snapshot loaded from a directory containing a
// site.yaml data file and a posts/ directory of Markdown files with YAML
// front matter. A Library owns the current snapshot and swaps it atomically
// on reload.
package content

import (
	"errors"
	"html/template"
)

var (
	// ErrPostNotFound is returned by Store.Post when no post has the requested id.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidContent wraps every validation failure raised while loading.
	ErrInvalidContent = errors.New("invalid content")
)

// Category is a project category. CategoryAll is the identity filter and
// never appears on a project.
type Category string

const CategoryAll Category = "all"

type BlogPost struct {
	ID               string
	Title            string
	Date             string // display-formatted, never parsed
	ShortDescription string
	Content          template.HTML
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Category     Category `yaml:"category"`
	Image        string   `yaml:"image"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Date         string   `yaml:"date"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

// Link is an outbound profile link (code hosting, professional network, mail).
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Profile struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Photo   string `yaml:"photo"`
	Links   []Link `yaml:"links"`
}
