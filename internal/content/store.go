package content

import (
	"fmt"
	"slices"
)

// Store is a read-only snapshot of the site content. Accessors return copies
// of the top-level slices so callers cannot reorder the snapshot.
type Store struct {
	title       string
	profile     Profile
	posts       []BlogPost
	postIndex   map[string]int
	categories  []Category
	projects    []Project
	skills      []Skill
	experiences []Experience
}

func (s *Store) Title() string { return s.title }

func (s *Store) Profile() Profile { return s.profile }

// Posts returns every post in publication order.
func (s *Store) Posts() []BlogPost { return slices.Clone(s.posts) }

// Post looks a post up by exact id.
func (s *Store) Post(id string) (BlogPost, error) {
	i, ok := s.postIndex[id]
	if !ok {
		return BlogPost{}, fmt.Errorf("%w: %q", ErrPostNotFound, id)
	}
	return s.posts[i], nil
}

func (s *Store) Projects() []Project { return slices.Clone(s.projects) }

// Categories returns the filter options: CategoryAll followed by the declared
// categories in declaration order.
func (s *Store) Categories() []Category {
	out := make([]Category, 0, len(s.categories)+1)
	out = append(out, CategoryAll)
	return append(out, s.categories...)
}

// Category resolves a requested filter name to a member of the option set.
func (s *Store) Category(name string) (Category, bool) {
	c := Category(name)
	if c == CategoryAll || slices.Contains(s.categories, c) {
		return c, true
	}
	return "", false
}

// FilterProjects applies Filter to the store's projects.
func (s *Store) FilterProjects(c Category) []Project {
	return Filter(s.Projects(), c)
}

func (s *Store) Skills() []Skill { return slices.Clone(s.skills) }

func (s *Store) Experiences() []Experience { return slices.Clone(s.experiences) }

// Filter returns the projects whose category equals c, preserving order.
// CategoryAll returns projects unchanged. No match yields an empty, non-nil slice.
func Filter(projects []Project, c Category) []Project {
	if c == CategoryAll {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
