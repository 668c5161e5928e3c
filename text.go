package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/gifty-speed/counter"
)

//go:embed content/site.yaml
var defaultContent []byte

// Site holds every piece of static copy rendered by the pages.
type Site struct {
	Owner        Profile       `yaml:"owner"`
	Nav          []NavItem     `yaml:"nav"`
	Social       []SocialLink  `yaml:"social"`
	HeroStats    []Stat        `yaml:"hero_stats"`
	Achievements []Stat        `yaml:"achievements"`
	Story        []Section     `yaml:"story"`
	Skills       []string      `yaml:"skills"`
	Philosophy   []Section     `yaml:"philosophy"`
	Garage       []Bike        `yaml:"garage"`
	Categories   []string      `yaml:"categories"`
	Posts        []Post        `yaml:"posts"`
	ContactInfo  []ContactInfo `yaml:"contact_info"`
}

type Profile struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Intro   string `yaml:"intro"`
}

type NavItem struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Active reports whether the item should be highlighted for path. Home only
// matches itself; every other item also matches its sub-paths.
func (n NavItem) Active(path string) bool {
	if n.Path == "/" {
		return path == "/"
	}
	return path == n.Path || strings.HasPrefix(path, strings.TrimSuffix(n.Path, "/")+"/")
}

type SocialLink struct {
	Name      string `yaml:"name"`
	Href      string `yaml:"href"`
	Followers string `yaml:"followers,omitempty"`
}

// Stat is a number shown through an animated counter.
type Stat struct {
	Slug       string  `yaml:"slug" json:"slug"`
	Label      string  `yaml:"label" json:"label"`
	Value      float64 `yaml:"value" json:"value"`
	Prefix     string  `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix     string  `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Decimals   int     `yaml:"decimals,omitempty" json:"decimals"`
	DurationMS *int    `yaml:"duration_ms,omitempty" json:"-"`
}

// Duration is the animation length, 2s unless the content overrides it.
func (s Stat) Duration() time.Duration {
	if s.DurationMS == nil {
		return counter.DefaultDuration
	}
	return time.Duration(*s.DurationMS) * time.Millisecond
}

// Text is the value as it reads once the counter has settled.
func (s Stat) Text() string {
	return s.Prefix + counter.Fixed(s.Value, s.Decimals) + s.Suffix
}

// InitialText is what the counter shows before its animation starts.
func (s Stat) InitialText() string {
	return s.Prefix + counter.Fixed(0, s.Decimals) + s.Suffix
}

type Section struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Bike struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Specs       string `yaml:"specs"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

type Post struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Excerpt  string `yaml:"excerpt"`
	Category string `yaml:"category"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"read_time"`
	Featured bool   `yaml:"featured"`
}

type ContactInfo struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// loadSite reads the content file at path, or the embedded copy when path is
// empty.
func loadSite(path string) (*Site, error) {
	data := defaultContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		data = b
	}
	return parseSite(data)
}

func parseSite(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) validate() error {
	slugs := make(map[string]bool)
	for _, st := range append(append([]Stat{}, s.HeroStats...), s.Achievements...) {
		if st.Slug == "" {
			return fmt.Errorf("stat %q has no slug", st.Label)
		}
		if slugs[st.Slug] {
			return fmt.Errorf("duplicate stat slug %q", st.Slug)
		}
		slugs[st.Slug] = true
	}

	ids := make(map[int]bool)
	featured := 0
	for _, p := range s.Posts {
		if ids[p.ID] {
			return fmt.Errorf("duplicate post id %d", p.ID)
		}
		ids[p.ID] = true
		if p.Featured {
			featured++
		}
	}
	if featured > 1 {
		return fmt.Errorf("%d featured posts, at most one allowed", featured)
	}
	return nil
}

// Stat looks up a hero stat or achievement by slug.
func (s *Site) Stat(slug string) (Stat, bool) {
	for _, st := range s.HeroStats {
		if st.Slug == slug {
			return st, true
		}
	}
	for _, st := range s.Achievements {
		if st.Slug == slug {
			return st, true
		}
	}
	return Stat{}, false
}

// FeaturedPost returns the featured post, if any.
func (s *Site) FeaturedPost() (Post, bool) {
	for _, p := range s.Posts {
		if p.Featured {
			return p, true
		}
	}
	return Post{}, false
}

// PostsIn returns the non-featured posts in category. "All" and the empty
// string select every category.
func (s *Site) PostsIn(category string) []Post {
	var posts []Post
	for _, p := range s.Posts {
		if p.Featured {
			continue
		}
		if category == "" || category == "All" || p.Category == category {
			posts = append(posts, p)
		}
	}
	return posts
}
