package assessment

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByteMirror/growlens/recraft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransformer struct {
	calls  int
	img    recraft.Image
	data   string
	prompt string
	url    string
	err    error
}

func (f *fakeTransformer) Transform(_ context.Context, img recraft.Image, prompt string) (string, error) {
	f.calls++
	f.img = img
	f.prompt = prompt
	if img.Body != nil {
		b, _ := io.ReadAll(img.Body)
		f.data = string(b)
	}
	return f.url, f.err
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("pixels"), 0644))
	return path
}

func TestSubmitWithoutImage(t *testing.T) {
	fake := &fakeTransformer{url: "https://x/y.png"}

	url, err := Submit(context.Background(), fake, NewForm(ContextUrban, "p"))

	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, "Please upload an image first", err.Error())
	assert.Empty(t, url)
	assert.Zero(t, fake.calls, "no transform without an image")
}

func TestSubmitSendsImageAndFinalPrompt(t *testing.T) {
	fake := &fakeTransformer{url: "https://x/y.png"}
	form := NewForm(ContextUrban, "Garden").
		WithImage(writeImage(t, "room.jpg")).
		TogglePreference("Edible plants").
		TogglePreference("Organic")

	url, err := Submit(context.Background(), fake, form)

	require.NoError(t, err)
	assert.Equal(t, "https://x/y.png", url)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "Garden with edible plants, organic", fake.prompt)
	assert.Equal(t, "room.jpg", fake.img.Name)
	assert.Equal(t, "image/jpg", fake.img.ContentType)
	assert.Equal(t, "pixels", fake.data)
}

func TestSubmitPropagatesTransformError(t *testing.T) {
	boom := errors.New("API request failed with status 500")
	fake := &fakeTransformer{err: boom}
	form := NewForm(ContextField, "p").WithImage(writeImage(t, "f.png"))

	_, err := Submit(context.Background(), fake, form)

	assert.ErrorIs(t, err, boom)
}

func TestSubmitMissingFile(t *testing.T) {
	fake := &fakeTransformer{}
	form := NewForm(ContextField, "p").WithImage(filepath.Join(t.TempDir(), "gone.png"))

	_, err := Submit(context.Background(), fake, form)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, fake.calls)
}
