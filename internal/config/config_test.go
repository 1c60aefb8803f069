package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/portfolio/internal/web"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "", cfg.BasePath)
	assert.Equal(t, "", cfg.ContentDir)
	assert.Equal(t, "./images", cfg.ImagesDir)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
base_path: portfolio/
content_dir: ./content
watch: true
log_format: text
shutdown_timeout: 3s
metrics:
  enabled: false
`), 0o644))
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/portfolio", cfg.BasePath)
	assert.Equal(t, "./content", cfg.ContentDir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("PORTFOLIO_PORT", "7000")
	t.Setenv("PORTFOLIO_BASE_PATH", "/portfolio")
	t.Setenv("PORTFOLIO_METRICS_PATH", "/internal/metrics")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/portfolio", cfg.BasePath)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
}

func TestLoad_PlainPortEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad mode":          "mode: production\n",
		"bad log format":    "log_format: xml\n",
		"bad port":          "port: 70000\n",
		"bad metrics path":  "metrics:\n  path: metrics\n",
		"watch without dir": "watch: true\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			t.Setenv("PORT", "")

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func loadMetrics(t *testing.T, base, path string) (*Config, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("PORTFOLIO_BASE_PATH", base)
	t.Setenv("PORTFOLIO_METRICS_PATH", path)
	return Load("")
}

func TestLoad_MetricsPathCollision(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
	}{
		{"root page", "", "/"},
		{"health", "", "/healthz"},
		{"blog", "", "/blog"},
		{"blog trailing slash", "", "/blog/"},
		{"post", "", "/blog/anything"},
		{"partials", "", "/partials/nav"},
		{"static", "", "/static/x"},
		{"static root", "", "/static"},
		{"images", "", "/images/logo.png"},
		{"base path", "/portfolio", "/portfolio"},
		{"base path slash", "/portfolio", "/portfolio/"},
		{"under base path", "/portfolio", "/portfolio/static/site.css"},
		{"health with base path", "/portfolio", "/healthz"},
	}
	for _, r := range web.PageRoutes() {
		p := strings.ReplaceAll(r.Path, ":id", "some-post")
		tests = append(tests,
			struct{ name, base, path string }{"page " + r.Path, "", p},
			struct{ name, base, path string }{"page under base " + r.Path, "/portfolio", "/portfolio" + p},
		)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMetrics(t, tt.base, tt.path)
			assert.ErrorContains(t, err, "collides with a site route")
		})
	}
}

func TestLoad_MetricsPathDisabledSkipsCollisionCheck(t *testing.T) {
	t.Setenv("PORTFOLIO_METRICS_ENABLED", "false")

	cfg, err := loadMetrics(t, "", "/blog")
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)
}

// Every accepted metrics path must mount without gin rejecting it.
func TestLoad_MetricsPathMounts(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"", "/metrics", "/metrics"},
		{"", "/metrics/", "/metrics"},
		{"", "/blogroll", "/blogroll"},
		{"/portfolio", "/blog", "/blog"},
		{"/portfolio", "/static/metrics", "/static/metrics"},
		{"/portfolio", "/portfolio-metrics", "/portfolio-metrics"},
	}
	for _, tt := range tests {
		t.Run(tt.base+tt.path, func(t *testing.T) {
			cfg, err := loadMetrics(t, tt.base, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Metrics.Path)

			assert.NotPanics(t, func() {
				web.New(web.Options{
					BasePath:    cfg.BasePath,
					ImagesDir:   t.TempDir(),
					MetricsPath: cfg.Metrics.Path,
				}, nil, nil)
			})
		})
	}
}
