package imagewriter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Options controls where and how a finished image is written
type Options struct {
	Dir          string // Output directory, created if missing
	Format       string // File extension without the dot: png, jpg, gif, tif, bmp
	ResizeWidth  uint   // Optional output size; 0 keeps the aspect ratio of the other axis
	ResizeHeight uint
	Publisher    *Publisher // Optional; nil disables upload
	Logger       core.Logger
}

// DefaultOptions writes PNG files to the "output" directory
func DefaultOptions() Options {
	return Options{
		Dir:    "output",
		Format: "png",
		Logger: core.NopLogger{},
	}
}

// ImageWriter is a raster buffer of nx × ny pixels that can be saved as an image file
type ImageWriter struct {
	name    string
	img     *image.RGBA
	options Options
}

// New creates an image writer for a picture called name
func New(name string, nx, ny int, options Options) *ImageWriter {
	if options.Format == "" {
		options.Format = DefaultOptions().Format
	}
	if options.Logger == nil {
		options.Logger = core.NopLogger{}
	}
	return &ImageWriter{
		name:    name,
		img:     image.NewRGBA(image.Rect(0, 0, nx, ny)),
		options: options,
	}
}

// Nx returns the horizontal resolution
func (w *ImageWriter) Nx() int { return w.img.Bounds().Dx() }

// Ny returns the vertical resolution
func (w *ImageWriter) Ny() int { return w.img.Bounds().Dy() }

// WritePixel stores the color of pixel (x, y); each pixel owns its own bytes,
// so concurrent writes to different pixels are safe.
func (w *ImageWriter) WritePixel(x, y int, color core.Color) {
	w.img.SetRGBA(x, y, color.RGBA())
}

// Image returns the raster buffer
func (w *ImageWriter) Image() *image.RGBA {
	return w.img
}

// Path returns the file the image is saved to
func (w *ImageWriter) Path() string {
	return filepath.Join(w.options.Dir, w.Key())
}

// Key returns the file name of the image, also used as the object key suffix when publishing
func (w *ImageWriter) Key() string {
	return fmt.Sprintf("%s.%s", w.name, strings.ToLower(w.options.Format))
}

// Output returns the image as it will be saved, resized if requested
func (w *ImageWriter) Output() image.Image {
	if w.options.ResizeWidth == 0 && w.options.ResizeHeight == 0 {
		return w.img
	}
	return resize.Resize(w.options.ResizeWidth, w.options.ResizeHeight, w.img, resize.Lanczos3)
}

// WriteToImage saves the image file and publishes it when a publisher is configured
func (w *ImageWriter) WriteToImage(ctx context.Context) error {
	out := w.Output()

	if w.options.Dir != "" {
		if err := os.MkdirAll(w.options.Dir, 0755); err != nil {
			return errorsmod.Wrapf(core.ErrImageOutput, "create output directory %s: %v", w.options.Dir, err)
		}
	}
	if err := imaging.Save(out, w.Path()); err != nil {
		return errorsmod.Wrapf(core.ErrImageOutput, "save %s: %v", w.Path(), err)
	}
	w.options.Logger.Printf("Saved %s (%dx%d)\n", w.Path(), out.Bounds().Dx(), out.Bounds().Dy())

	if w.options.Publisher == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := Encode(&buf, out, w.options.Format); err != nil {
		return err
	}
	return w.options.Publisher.Publish(ctx, w.Key(), w.options.Format, buf.Bytes())
}

// Encode writes img to out in the format named by its file extension
func Encode(out io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return errorsmod.Wrapf(core.ErrImageOutput, "format %q: %v", format, err)
	}
	if err := imaging.Encode(out, img, f); err != nil {
		return errorsmod.Wrapf(core.ErrImageOutput, "encode %s: %v", format, err)
	}
	return nil
}
