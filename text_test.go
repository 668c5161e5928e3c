package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/gifty-speed/counter"
)

func TestLoadEmbeddedSite(t *testing.T) {
	site, err := loadSite("")
	require.NoError(t, err)

	assert.Equal(t, "Gifty", site.Owner.Name)
	assert.Len(t, site.Nav, 4)
	assert.Len(t, site.Achievements, 6)
	assert.Len(t, site.Posts, 8)

	top, ok := site.Stat("top-speed")
	require.True(t, ok)
	assert.Equal(t, "300 KM/H", top.Text())
	assert.Equal(t, "0 KM/H", top.InitialText())
	assert.Equal(t, 1500*time.Millisecond, top.Duration())

	hero, ok := site.Stat("max-speed")
	require.True(t, ok)
	assert.Equal(t, counter.DefaultDuration, hero.Duration())

	miles, _ := site.Stat("miles-traveled")
	assert.Equal(t, "100K+", miles.Text())

	_, ok = site.Stat("nope")
	assert.False(t, ok)
}

func TestLoadSiteFromFile(t *testing.T) {
	_, err := loadSite(t.TempDir() + "/missing.yaml")
	assert.ErrorContains(t, err, "read content")
}

func TestSiteValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  string
	}{
		{"missing slug", "achievements:\n  - label: Wins\n    value: 3\n", "has no slug"},
		{"duplicate slug", "hero_stats:\n  - slug: a\n    value: 1\nachievements:\n  - slug: a\n    value: 2\n", "duplicate stat slug"},
		{"duplicate post", "posts:\n  - id: 1\n  - id: 1\n", "duplicate post id"},
		{"two featured", "posts:\n  - id: 1\n    featured: true\n  - id: 2\n    featured: true\n", "featured posts"},
		{"bad yaml", "posts: [", "parse content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSite([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestStatZeroDuration(t *testing.T) {
	site, err := parseSite([]byte("achievements:\n  - slug: x\n    value: 2.5\n    decimals: 1\n    prefix: $\n    duration_ms: 0\n"))
	require.NoError(t, err)

	st, ok := site.Stat("x")
	require.True(t, ok)
	assert.Zero(t, st.Duration())
	assert.Equal(t, "$2.5", st.Text())
	assert.Equal(t, "$0.0", st.InitialText())
}

func TestPostsIn(t *testing.T) {
	site, err := loadSite("")
	require.NoError(t, err)

	featured, ok := site.FeaturedPost()
	require.True(t, ok)
	assert.Equal(t, 1, featured.ID)

	all := site.PostsIn("All")
	assert.Len(t, all, 7)
	assert.Equal(t, all, site.PostsIn(""))
	for _, p := range all {
		assert.False(t, p.Featured)
	}

	var ids []int
	for _, p := range site.PostsIn("Family") {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 8}, ids)

	assert.Empty(t, site.PostsIn("Life Balance"), "the only Life Balance post is featured")
	assert.Empty(t, site.PostsIn("Knitting"))
}

func TestNavItemActive(t *testing.T) {
	home := NavItem{Name: "Home", Path: "/"}
	blog := NavItem{Name: "Blog", Path: "/blog"}

	assert.True(t, home.Active("/"))
	assert.False(t, home.Active("/blog"))
	assert.True(t, blog.Active("/blog"))
	assert.True(t, blog.Active("/blog/3"))
	assert.False(t, blog.Active("/blogroll"))
	assert.False(t, blog.Active("/"))
}
