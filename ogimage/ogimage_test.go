package ogimage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MostafaKMilly/my-website/ogimage"
)

func TestURLFixedSegments(t *testing.T) {
	u := ogimage.URL("Hello World", "a test")

	assert.True(t, strings.HasPrefix(u, ogimage.Default.BaseURL+"/"))
	assert.True(t, strings.HasSuffix(u, "/"+ogimage.Default.Asset))
	assert.Contains(t, u, "/w_1600,h_836,q_100/")
	assert.Contains(t, u, "/fl_layer_apply,g_south_west,x_100,y_180/")
	assert.Contains(t, u, "/fl_layer_apply,g_south_west,x_100,y_100/")
}

func TestURLEncodesPayloadsTwice(t *testing.T) {
	u := ogimage.URL("Hello World", "a test")

	// Space encoded once to %20, then the % re-encoded to %25.
	assert.Contains(t, u, "l_text:Ubuntu_92_bold:Hello%2520World")
	assert.Contains(t, u, "l_text:Ubuntu_52_bold:a%2520test")
	// Title layer must come before the meta layer.
	assert.Less(t,
		strings.Index(u, "Ubuntu_92_bold"),
		strings.Index(u, "Ubuntu_52_bold"))
}

func TestURLDeterministic(t *testing.T) {
	inputs := [][2]string{
		{"Hello World", "a test"},
		{"", ""},
		{"A/B", "x,y"},
		{"100% legit", "#hashtag"},
		{"héllo wörld", "日本語のテスト"},
	}
	for _, in := range inputs {
		assert.Equal(t, ogimage.URL(in[0], in[1]), ogimage.URL(in[0], in[1]))
	}
}

func TestURLEmptyInputs(t *testing.T) {
	u := ogimage.URL("", "")

	assert.Contains(t, u, "l_text:Ubuntu_92_bold:,co_rgb:")
	assert.Contains(t, u, "l_text:Ubuntu_52_bold:,co_rgb:")
	// All seven pipeline segments are still present.
	rest := strings.TrimPrefix(u, ogimage.Default.BaseURL+"/")
	assert.Len(t, strings.Split(rest, "/"), 6)
}

func TestURLSegmentCountInvariant(t *testing.T) {
	base := ogimage.URL("plain", "text")
	baseCount := strings.Count(base, "/")

	for _, in := range [][2]string{
		{"with space", "and more"},
		{"a/b/c", "x,y,z"},
		{"colon: here", "percent %25 here"},
		{"#", "?"},
	} {
		u := ogimage.URL(in[0], in[1])
		assert.Equal(t, baseCount, strings.Count(u, "/"),
			"inputs %q/%q must not add path segments", in[0], in[1])
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		title string
		meta  string
	}{
		{"plain", "Hello World", "a test"},
		{"empty", "", ""},
		{"slash and comma", "A/B", "x,y"},
		{"colon", "go: the good parts", "a:b:c"},
		{"hash and question", "#1 post?", "what is #this"},
		{"literal percent", "100% done", "50%2B legacy"},
		{"already encoded lookalike", "%20", "%2520"},
		{"non-ascii", "héllo wörld", "日本語のテスト"},
		{"quotes and ampersand", `say "hi" & bye`, "this & that"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ogimage.URL(tt.title, tt.meta)

			gotTitle, err := ogimage.DecodePayload(extractPayload(t, u, "l_text:Ubuntu_92_bold:"))
			require.NoError(t, err)
			assert.Equal(t, tt.title, gotTitle)

			gotMeta, err := ogimage.DecodePayload(extractPayload(t, u, "l_text:Ubuntu_52_bold:"))
			require.NoError(t, err)
			assert.Equal(t, tt.meta, gotMeta)
		})
	}
}

func TestCustomTemplate(t *testing.T) {
	tmpl := ogimage.Template{
		BaseURL:    "https://res.cloudinary.com/demo/image/upload",
		Canvas:     "w_1200,h_630,q_90",
		TitleLayer: "l_text:Arial_80_bold:%s,co_rgb:ffffff,c_fit,w_1000",
		TitleApply: "fl_layer_apply,g_north_west,x_80,y_80",
		MetaLayer:  "l_text:Arial_40:%s,co_rgb:ffffff90,c_fit,w_1000",
		MetaApply:  "fl_layer_apply,g_north_west,x_80,y_220",
		Asset:      "bg.jpg",
	}
	u := tmpl.URL("Title", "Meta")

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload"+
			"/w_1200,h_630,q_90"+
			"/l_text:Arial_80_bold:Title,co_rgb:ffffff,c_fit,w_1000"+
			"/fl_layer_apply,g_north_west,x_80,y_80"+
			"/l_text:Arial_40:Meta,co_rgb:ffffff90,c_fit,w_1000"+
			"/fl_layer_apply,g_north_west,x_80,y_220"+
			"/bg.jpg",
		u)
}

func TestDecodePayloadMalformed(t *testing.T) {
	_, err := ogimage.DecodePayload("%zz")
	assert.Error(t, err)
}

// extractPayload pulls the encoded text between the layer marker and the
// following ",co_rgb" parameter.
func extractPayload(t *testing.T, u, marker string) string {
	t.Helper()
	start := strings.Index(u, marker)
	require.GreaterOrEqual(t, start, 0, "marker %q not found in %q", marker, u)
	rest := u[start+len(marker):]
	end := strings.Index(rest, ",co_rgb")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}
