package listing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/utils"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

const (
	DefaultMaxBytes     = 300 << 10
	DefaultMaxDimension = 1280
	// DefaultMaxPixels admits 48 MP phone photos.
	DefaultMaxPixels = 50_000_000

	maxQuality = 90
	minQuality = 30
	// Each shrink pass scales the longest edge to this share of the previous.
	shrinkFactor = 0.75
	maxShrinks   = 4
	dataURLJPEG  = "data:image/jpeg;base64,"
)

// Compressor turns user images into bounded JPEG data URLs.
type Compressor struct {
	MaxBytes     int
	MaxDimension int
	// MaxPixels bounds the decoded source; non-positive uses DefaultMaxPixels.
	MaxPixels int
}

// NewCompressor returns a Compressor; non-positive limits use the defaults.
func NewCompressor(maxBytes, maxDimension int) *Compressor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Compressor{MaxBytes: maxBytes, MaxDimension: maxDimension, MaxPixels: DefaultMaxPixels}
}

// Compress decodes r, scales it to fit MaxDimension and re-encodes it as JPEG,
// lowering quality and then size until the result fits MaxBytes.
func (c *Compressor) Compress(r io.Reader) (models.ListingImage, error) {
	unreadable := &marketerrors.ValidationError{
		Fields: []string{"images"},
		Reason: "image could not be read as JPEG, PNG, GIF or WebP",
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return models.ListingImage{}, fmt.Errorf("listing: read image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return models.ListingImage{}, unreadable
	}
	if err := c.checkPixels(cfg); err != nil {
		return models.ListingImage{}, err
	}
	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return models.ListingImage{}, unreadable
	}

	limit := c.MaxDimension
	for pass := 0; pass <= maxShrinks; pass++ {
		scaled := fit(src, limit)
		for q := maxQuality; q >= minQuality; q -= 10 {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: q}); err != nil {
				return models.ListingImage{}, fmt.Errorf("listing: encode image: %w", err)
			}
			if buf.Len() <= c.MaxBytes {
				b := scaled.Bounds()
				utils.Debug("image compressed", map[string]any{
					"format": format, "width": b.Dx(), "height": b.Dy(), "quality": q, "bytes": buf.Len(),
				})
				return models.ListingImage{
					ID:   utils.GenerateID(),
					Data: dataURLJPEG + base64.StdEncoding.EncodeToString(buf.Bytes()),
				}, nil
			}
		}
		limit = int(float64(limit) * shrinkFactor)
		if limit < 1 {
			break
		}
	}
	return models.ListingImage{}, &marketerrors.ValidationError{
		Fields: []string{"images"},
		Reason: fmt.Sprintf("image does not fit in %d KB", c.MaxBytes>>10),
	}
}

// checkPixels rejects sources whose decoded size would exceed MaxPixels.
func (c *Compressor) checkPixels(cfg image.Config) error {
	limit := c.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(limit) {
		utils.Warn("image rejected before decoding", map[string]any{"width": cfg.Width, "height": cfg.Height})
		return &marketerrors.ValidationError{
			Fields: []string{"images"},
			Reason: fmt.Sprintf("image is %dx%d, over the %d pixel limit", cfg.Width, cfg.Height, limit),
		}
	}
	return nil
}

// fit draws src onto an opaque canvas whose longest edge is at most limit.
// JPEG has no alpha, so transparent pixels become white.
func fit(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if longest := max(w, h); longest > limit {
		w = max(1, w*limit/longest)
		h = max(1, h*limit/longest)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// DecodeDataURL returns the raw bytes of an encoded listing image.
func DecodeDataURL(data string) ([]byte, error) {
	if len(data) < len(dataURLJPEG) || data[:len(dataURLJPEG)] != dataURLJPEG {
		return nil, fmt.Errorf("listing: not a JPEG data URL")
	}
	return base64.StdEncoding.DecodeString(data[len(dataURLJPEG):])
}
