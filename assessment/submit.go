package assessment

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ByteMirror/growlens/recraft"
)

// ErrNoImage is returned by Submit when no photo has been picked.
var ErrNoImage = errors.New("Please upload an image first")

// Transformer turns a photo and a prompt into the URL of a rendered image.
// *recraft.Client implements it.
type Transformer interface {
	Transform(ctx context.Context, img recraft.Image, prompt string) (string, error)
}

// Submit sends the form's photo with its final prompt and returns the rendered
// image URL. It does nothing, network included, when no photo is picked.
func Submit(ctx context.Context, t Transformer, f Form) (string, error) {
	if !f.HasImage() {
		return "", ErrNoImage
	}

	file, err := os.Open(f.ImagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	return t.Transform(ctx, recraft.NewImage(f.ImagePath, file), FinalPrompt(f))
}
