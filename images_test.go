package mywebsite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	src := encodeTestImage(t, 640, 480)

	img, data, err := processImage(src, "My Cover Photo.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != 640 || img.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", img.Width, img.Height)
	}
	if img.Filename != "my-cover-photo.jpg" {
		t.Errorf("Filename = %q, want my-cover-photo.jpg", img.Filename)
	}
	if len(data) == 0 {
		t.Error("encoded data should not be empty")
	}
}

func TestProcessImageDownscalesWideImages(t *testing.T) {
	src := encodeTestImage(t, 3200, 1600)

	img, _, err := processImage(src, "wide.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != maxImageWidth {
		t.Errorf("Width = %d, want %d", img.Width, maxImageWidth)
	}
	if img.Height != 800 {
		t.Errorf("Height = %d, want 800 (aspect preserved)", img.Height)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(bytes.NewBufferString("not an image"), "x.png"); err == nil {
		t.Error("expected error for non-image data")
	}
}
