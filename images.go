package mywebsite

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/MostafaKMilly/my-website/views"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, optionally resizes it to
// maxImageWidth, and encodes it as JPEG. Returns metadata and the encoded
// bytes. Uploads are article assets (covers, figures), so the width cap
// matches the widest rendering surface.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + ".jpg"

	return Image{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base)
}

// uploadsDir is where processed images live, served under /public/uploads.
func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

// listImages scans the uploads directory, newest first.
func (a *App) listImages() ([]Image, error) {
	entries, err := os.ReadDir(a.uploadsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read uploads dir: %w", err)
	}

	var images []Image
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jpg") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename:   e.Name(),
			Size:       int(info.Size()),
			UploadedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt > images[j].UploadedAt
	})
	return images, nil
}

// ensureUniqueFilename appends a counter while the filename exists on disk.
func (a *App) ensureUniqueFilename(img *Image) {
	dir := a.uploadsDir()
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			break
		}
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
	img.Filename = candidate
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Could not process image")
	}

	if err := os.MkdirAll(a.uploadsDir(), 0o755); err != nil {
		return err
	}
	a.ensureUniqueFilename(&img)
	if err := os.WriteFile(filepath.Join(a.uploadsDir(), img.Filename), data, 0o644); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/admin/images/")
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	images, err := a.listImages()
	if err != nil {
		return err
	}
	viewImages := make([]views.Image, 0, len(images))
	for _, img := range images {
		viewImages = append(viewImages, views.Image{
			Filename:   img.Filename,
			Size:       img.Size,
			UploadedAt: img.UploadedAt,
		})
	}
	return Render(c, views.AdminImages(a.site(), viewImages, CsrfToken(c)))
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" || !strings.HasSuffix(filename, ".jpg") {
		return c.String(http.StatusBadRequest, "Invalid filename")
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
