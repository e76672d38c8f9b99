package views

// Site holds site-wide settings passed into every template so nothing is
// hardcoded in the markup.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	Analytics   bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>
// template. Image is the social preview URL built by the ogimage package.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image + twitter:image
}

// Image describes an uploaded asset shown on the admin images page.
type Image struct {
	Filename   string
	Size       int
	UploadedAt string
}
