package mywebsite

// Image describes an uploaded asset served from /public/uploads.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
