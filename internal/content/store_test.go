package content

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(Default())
	require.NoError(t, err)
	return s
}

func titles(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestStore_Post(t *testing.T) {
	s := defaultStore(t)

	for _, want := range s.Posts() {
		got, err := s.Post(want.ID)
		require.NoError(t, err, want.ID)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Post(%q) mismatch (-want +got):\n%s", want.ID, diff)
		}
	}

	post, err := s.Post("nyu-experience")
	require.NoError(t, err)
	assert.Equal(t, "My Journey at NYU: Navigating Interactive Media", post.Title)
	assert.Equal(t, "November 15, 2023", post.Date)
	assert.Equal(t, "Reflections on my transformative experience as an Interactive Media student at New York University.", post.ShortDescription)
	assert.Contains(t, string(post.Content), "Stepping into the Interactive Media program at NYU")
}

func TestStore_PostNotFound(t *testing.T) {
	s := defaultStore(t)

	for _, id := range []string{"nonexistent", "", "NYU-EXPERIENCE", "nyu"} {
		_, err := s.Post(id)
		assert.True(t, errors.Is(err, ErrPostNotFound), "id %q: got %v", id, err)
	}
}

func TestStore_PostsOrder(t *testing.T) {
	s := defaultStore(t)

	var ids []string
	for _, p := range s.Posts() {
		ids = append(ids, p.ID)
	}
	want := []string{"nyu-experience", "saadiyat-food", "course-recommendations", "succeeding-at-nyuad"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("post order mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	s := defaultStore(t)

	tests := []struct {
		category Category
		want     []string
	}{
		{CategoryAll, []string{"NYUAD Food Tour", "Interactive Comic", "Interactive Sound Project", "Interactive Short Film"}},
		{"Creative", []string{"Interactive Comic", "Interactive Sound Project"}},
		{"Film", []string{"Interactive Short Film"}},
		{"Technical", []string{"NYUAD Food Tour"}},
		{"Sculpture", []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := titles(s.FilterProjects(tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterProjects(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestFilter_AllIsIdentity(t *testing.T) {
	projects := []Project{{Title: "b", Category: "x"}, {Title: "a", Category: "y"}}
	got := Filter(projects, CategoryAll)
	assert.Equal(t, projects, got)
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, "Creative")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_Categories(t *testing.T) {
	s := defaultStore(t)

	assert.Equal(t, []Category{CategoryAll, "Creative", "Film", "Technical"}, s.Categories())

	c, ok := s.Category("Film")
	assert.True(t, ok)
	assert.Equal(t, Category("Film"), c)

	_, ok = s.Category("all")
	assert.True(t, ok)

	_, ok = s.Category("film")
	assert.False(t, ok)
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	s := defaultStore(t)

	posts := s.Posts()
	posts[0].Title = "changed"
	projects := s.Projects()
	projects[0], projects[1] = projects[1], projects[0]

	assert.Equal(t, "My Journey at NYU: Navigating Interactive Media", s.Posts()[0].Title)
	assert.Equal(t, "NYUAD Food Tour", s.Projects()[0].Title)
}

func TestStore_StaticSections(t *testing.T) {
	s := defaultStore(t)

	assert.Equal(t, "Uditi Sharma", s.Title())
	assert.Equal(t, "Uditi Sharma", s.Profile().Name)
	assert.Len(t, s.Profile().Links, 3)
	assert.Len(t, s.Skills(), 6)
	require.Len(t, s.Experiences(), 4)
	assert.Equal(t, "Global Career Peer", s.Experiences()[0].Title)
	assert.Len(t, s.Experiences()[0].Achievements, 3)
}
