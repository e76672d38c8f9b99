// Package content loads the blog's Markdown and MDX articles from disk and
// serves them from memory. Files carry YAML frontmatter between "---"
// delimiters; everything after the closing delimiter is the article body.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("content: post not found")

// Post is a single parsed article.
type Post struct {
	Slug      string
	Title     string
	Date      string // YYYY-MM-DD
	Tags      []string
	Summary   string
	Cover     string // optional cover image path under /public
	Body      string // raw Markdown after the frontmatter
	Link      string
	Published bool
}

// frontmatter mirrors the YAML header of an article file.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags"`
	Cover       string   `yaml:"cover"`
	Draft       bool     `yaml:"draft"`
}

// Library holds every article from a content directory. Reads are served
// from memory behind an RWMutex; Reload replaces the whole snapshot.
type Library struct {
	dir string

	mu    sync.RWMutex
	posts []Post // published, sorted by date descending
	all   []Post // published and drafts
	tags  []string
}

// Load reads all articles under dir and returns a ready Library.
func Load(dir string) (*Library, error) {
	l := &Library{dir: dir}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir returns the content directory the library reads from.
func (l *Library) Dir() string {
	return l.dir
}

// Reload re-reads the content directory and atomically swaps the snapshot.
// Files that fail to parse are skipped with a logged warning so one broken
// article cannot take the site down.
func (l *Library) Reload() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("content: read dir %s: %w", l.dir, err)
	}

	var all []Post
	for _, e := range entries {
		if e.IsDir() || !isArticle(e.Name()) {
			continue
		}
		path := filepath.Join(l.dir, e.Name())
		post, err := ParseFile(path)
		if err != nil {
			log.Printf("content: skipping %s: %v", path, err)
			continue
		}
		all = append(all, post)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date > all[j].Date
		}
		return all[i].Slug < all[j].Slug
	})

	var published []Post
	tagSet := make(map[string]struct{})
	for _, p := range all {
		if !p.Published {
			continue
		}
		published = append(published, p)
		for _, t := range p.Tags {
			tagSet[strings.ToLower(t)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	l.mu.Lock()
	l.posts = published
	l.all = all
	l.tags = tags
	l.mu.Unlock()
	return nil
}

// Posts returns published posts, optionally filtered by tag.
func (l *Library) Posts(tag string) []Post {
	l.mu.RLock()
	posts := l.posts
	l.mu.RUnlock()

	if tag == "" {
		return posts
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// Tags returns the sorted, deduplicated tags of all published posts.
func (l *Library) Tags() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tags
}

// Get returns a published post by slug.
func (l *Library) Get(slug string) (Post, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// GetAny returns a post by slug regardless of draft status (for the admin
// preview).
func (l *Library) GetAny(slug string) (Post, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.all {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// All returns every post, drafts included, sorted by date descending.
func (l *Library) All() []Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.all
}

// ParseFile reads one article file and parses its frontmatter.
func ParseFile(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("read file: %w", err)
	}
	post, err := Parse(data)
	if err != nil {
		return Post{}, err
	}
	if post.Slug == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		post.Slug = slugify(base)
		post.Link = "/blog/" + post.Slug
	}
	return post, nil
}

// Parse parses an article from raw bytes. The file must start with a
// "---" frontmatter block; the title is required.
func Parse(data []byte) (Post, error) {
	rest, ok := bytes.CutPrefix(bytes.TrimLeft(data, "\xef\xbb\xbf\n\r"), []byte("---"))
	if !ok {
		return Post{}, errors.New("missing frontmatter delimiter")
	}
	head, body, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return Post{}, errors.New("unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return Post{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, errors.New("missing required field: title")
	}

	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = slugify(fm.Title)
	}

	post := Post{
		Slug:      slug,
		Title:     strings.TrimSpace(fm.Title),
		Date:      strings.TrimSpace(fm.PubDate),
		Tags:      normalizeTags(fm.Tags),
		Summary:   strings.TrimSpace(fm.Description),
		Cover:     strings.TrimSpace(fm.Cover),
		Body:      strings.TrimSpace(string(body)),
		Published: !fm.Draft,
	}
	if post.Slug != "" {
		post.Link = "/blog/" + post.Slug
	}
	return post, nil
}

func isArticle(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

// slugify converts a title to a URL-safe slug.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
