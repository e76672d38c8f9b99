// Package ogimage builds Cloudinary transformation URLs for social preview
// images. A generated URL renders a fixed background with the post title and
// a secondary line composited as text layers, sized for OpenGraph cards.
package ogimage

import (
	"fmt"
	"net/url"
	"strings"
)

// Template is the fixed transformation pipeline for a preview image. The
// target service reads the URL path positionally: the canvas directive must
// precede the layer directives, each apply directive must immediately follow
// the layer it positions, and the background asset comes last. Only the two
// text payloads vary between invocations.
type Template struct {
	// BaseURL is the service host plus account upload prefix.
	BaseURL string
	// Canvas sets output width, height and quality.
	Canvas string
	// TitleLayer and MetaLayer are fmt templates; the single %s receives
	// the double-encoded text payload.
	TitleLayer string
	// TitleApply anchors the title layer on the canvas.
	TitleApply string
	MetaLayer  string
	MetaApply  string
	// Asset is the background image filename.
	Asset string
}

// Default is the production preview template: a 1600x836 canvas with the
// title in Ubuntu 92 bold and the secondary line in Ubuntu 52 bold at 50%
// alpha, both fitted into a 1400px column anchored from the south west.
var Default = Template{
	BaseURL:    "https://res.cloudinary.com/mostafakmilly/image/upload",
	Canvas:     "w_1600,h_836,q_100",
	TitleLayer: "l_text:Ubuntu_92_bold:%s,co_rgb:ffe4e6,c_fit,w_1400,h_240",
	TitleApply: "fl_layer_apply,g_south_west,x_100,y_180",
	MetaLayer:  "l_text:Ubuntu_52_bold:%s,co_rgb:ffe4e680,c_fit,w_1400",
	MetaApply:  "fl_layer_apply,g_south_west,x_100,y_100",
	Asset:      "og_base.png",
}

// URL builds the preview image URL for title and meta using the Default
// template. The result is deterministic and safe to embed in og:image tags.
func URL(title, meta string) string {
	return Default.URL(title, meta)
}

// URL substitutes the double-encoded payloads into the text-layer segments
// and joins the pipeline with "/". Empty inputs are accepted and produce
// empty payload positions; no error path exists.
func (t Template) URL(title, meta string) string {
	segments := []string{
		t.BaseURL,
		t.Canvas,
		fmt.Sprintf(t.TitleLayer, doubleEscape(title)),
		t.TitleApply,
		fmt.Sprintf(t.MetaLayer, doubleEscape(meta)),
		t.MetaApply,
		t.Asset,
	}
	return strings.Join(segments, "/")
}

// doubleEscape percent-encodes s twice in sequence. The service splits its
// URL on "/" and parses "," and ":" inside each segment, so one encoding
// pass neutralizes those delimiters in the user text; the second pass
// re-encodes the "%" signs so the payload also survives the service's own
// decode-then-parse step unchanged.
func doubleEscape(s string) string {
	return escape(escape(s))
}

// escape percent-encodes a single pass, with spaces as %20 rather than the
// query-style "+" so the second pass yields %2520.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DecodePayload reverses doubleEscape by percent-decoding exactly twice.
// Callers can use it to verify that a payload round-trips to the original
// text before publishing the URL.
func DecodePayload(s string) (string, error) {
	once, err := url.QueryUnescape(s)
	if err != nil {
		return "", fmt.Errorf("first decode pass: %w", err)
	}
	plain, err := url.QueryUnescape(once)
	if err != nil {
		return "", fmt.Errorf("second decode pass: %w", err)
	}
	return plain, nil
}
