package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArticle(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write article: %v", err)
	}
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "first.md", `---
title: First Post
description: The first one
pubDate: "2024-01-10"
tags: [Go, Testing]
---
# Hello

Body text.`)
	writeArticle(t, dir, "second.mdx", `---
title: Second Post
pubDate: "2024-03-02"
tags: [go]
---
More body.`)
	writeArticle(t, dir, "draft.md", `---
title: Work In Progress
pubDate: "2024-04-01"
draft: true
---
Not ready.`)
	writeArticle(t, dir, "notes.txt", "ignored, wrong extension")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	posts := lib.Posts("")
	if len(posts) != 2 {
		t.Fatalf("published posts = %d, want 2", len(posts))
	}
	// Sorted by date descending.
	if posts[0].Slug != "second-post" || posts[1].Slug != "first-post" {
		t.Errorf("order = [%s %s], want [second-post first-post]", posts[0].Slug, posts[1].Slug)
	}
	if all := lib.All(); len(all) != 3 {
		t.Errorf("all posts = %d, want 3 (drafts included)", len(all))
	}
}

func TestLibraryTags(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", "---\ntitle: A\npubDate: \"2024-01-01\"\ntags: [Go, Web]\n---\nbody")
	writeArticle(t, dir, "b.md", "---\ntitle: B\npubDate: \"2024-01-02\"\ntags: [go]\n---\nbody")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tags := lib.Tags()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", tags)
	}
	if got := lib.Posts("GO"); len(got) != 2 {
		t.Errorf("Posts(GO) = %d posts, want 2 (tag match is case-insensitive)", len(got))
	}
}

func TestGetAndGetAny(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "live.md", "---\ntitle: Live\npubDate: \"2024-01-01\"\n---\nbody")
	writeArticle(t, dir, "hidden.md", "---\ntitle: Hidden\npubDate: \"2024-01-02\"\ndraft: true\n---\nbody")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := lib.Get("live"); err != nil {
		t.Errorf("Get(live) failed: %v", err)
	}
	if _, err := lib.Get("hidden"); err != ErrNotFound {
		t.Errorf("Get(hidden) = %v, want ErrNotFound (draft)", err)
	}
	if _, err := lib.GetAny("hidden"); err != nil {
		t.Errorf("GetAny(hidden) failed: %v", err)
	}
	if _, err := lib.Get("nope"); err != ErrNotFound {
		t.Errorf("Get(nope) = %v, want ErrNotFound", err)
	}
}

func TestReloadSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "good.md", "---\ntitle: Good\npubDate: \"2024-01-01\"\n---\nbody")
	writeArticle(t, dir, "broken.md", "no frontmatter at all")
	writeArticle(t, dir, "untitled.md", "---\npubDate: \"2024-01-01\"\n---\nbody")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(lib.All()); got != 1 {
		t.Errorf("loaded %d posts, want 1 (broken files skipped)", got)
	}
}

func TestParse(t *testing.T) {
	post, err := Parse([]byte(`---
title: "Building a Blog: Part 1"
description: Notes on shipping
pubDate: "2024-06-15"
slug: building-a-blog
cover: /public/uploads/cover.jpg
tags:
  - go
  - web
---
The **body**.`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Slug != "building-a-blog" {
		t.Errorf("Slug = %q, want building-a-blog", post.Slug)
	}
	if post.Title != "Building a Blog: Part 1" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Link != "/blog/building-a-blog" {
		t.Errorf("Link = %q", post.Link)
	}
	if post.Cover != "/public/uploads/cover.jpg" {
		t.Errorf("Cover = %q", post.Cover)
	}
	if post.Body != "The **body**." {
		t.Errorf("Body = %q", post.Body)
	}
	if !post.Published {
		t.Error("Published should default to true")
	}
}

func TestParseSlugFromTitle(t *testing.T) {
	post, err := Parse([]byte("---\ntitle: Hello, World & Friends!\npubDate: \"2024-01-01\"\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Slug != "hello-world-friends" {
		t.Errorf("Slug = %q, want hello-world-friends", post.Slug)
	}
}
