package recraft

import (
	"io"
	"path"
	"regexp"
	"strings"
)

// Image is the photo sent in the "image" multipart field.
type Image struct {
	Name        string
	ContentType string
	Body        io.Reader
}

var extPattern = regexp.MustCompile(`\.(\w+)$`)

// NewImage names the part after the last path segment of source and derives
// image/<ext> from its extension, defaulting to image/png.
func NewImage(source string, body io.Reader) Image {
	name := path.Base(strings.ReplaceAll(source, "\\", "/"))
	if name == "." || name == "/" {
		name = "image.png"
	}
	contentType := "image/png"
	if m := extPattern.FindStringSubmatch(name); m != nil {
		contentType = "image/" + m[1]
	}
	return Image{Name: name, ContentType: contentType, Body: body}
}

// Options are the fixed generation parameters sent alongside the prompt.
type Options struct {
	Strength       float64
	Style          string
	N              int
	ResponseFormat string
}

// DefaultOptions are strength=0.7, style=realistic_image, n=1, response_format=url.
func DefaultOptions() Options {
	return Options{
		Strength:       0.7,
		Style:          "realistic_image",
		N:              1,
		ResponseFormat: "url",
	}
}

type imageResult struct {
	URL string `json:"url"`
}

type transformResponse struct {
	Data []imageResult `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}
