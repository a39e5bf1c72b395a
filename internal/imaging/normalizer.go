package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/titles"
)

// Normalizer renders normalized covers and generated icons into its two
// output directories. Construct one per run from the media configuration.
type Normalizer struct {
	coverDir   string
	minWidth   int
	minHeight  int
	maxStretch float64
	iconDir    string
	iconSize   int
	logger     *log.Logger
}

// NewNormalizer creates a Normalizer from the media configuration.
func NewNormalizer(cfg shared.MediaConfig, logger *log.Logger) *Normalizer {
	return &Normalizer{
		coverDir:   cfg.Cover.Dir,
		minWidth:   cfg.Cover.MinWidth,
		minHeight:  cfg.Cover.MinHeight,
		maxStretch: cfg.Cover.MaxStretch,
		iconDir:    cfg.Icon.Dir,
		iconSize:   cfg.Icon.Size,
		logger:     logger,
	}
}

// NormalizeCover resizes and pads cover art to the configured aspect
// ratio on an opaque black canvas. targetWidth optionally raises the
// minimum width. Returns the absolute output path, or "" when the source
// is missing or unreadable; failures are warnings, never errors, so a
// caller can fall back to the raw source path.
func (n *Normalizer) NormalizeCover(title, coverPath string, targetWidth int) string {
	if coverPath == "" {
		return ""
	}
	srcInfo, err := os.Stat(coverPath)
	if err != nil {
		return ""
	}

	dest := filepath.Join(n.coverDir, titles.SafeFilename(stemOr(coverPath, title), "png"))
	if cached, ok := n.upToDate(dest, srcInfo); ok {
		return cached
	}

	img, err := decode(coverPath)
	if err != nil {
		n.logger.Warn("failed to normalize cover", "title", title, "path", coverPath, "error", err)
		return ""
	}

	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	aspect := float64(n.minWidth) / float64(n.minHeight)

	targetW := n.minWidth
	if targetWidth > targetW {
		targetW = targetWidth
	}
	targetH := int(math.Round(float64(targetW) / aspect))
	if targetH < 1 {
		targetH = 1
	}

	// Wider-than-target sources scale to fit the height, narrower ones
	// to fit the width; either way the upscale factor is capped.
	scale := float64(targetW) / float64(srcW)
	if float64(srcW)/float64(srcH) > aspect {
		scale = float64(targetH) / float64(srcH)
	}
	scale = math.Min(scale, n.maxStretch)

	newW := max(1, int(float64(srcW)*scale))
	newH := max(1, int(float64(srcH)*scale))

	canvas := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	fill(canvas, color.RGBA{0, 0, 0, 255})

	offX := (targetW - newW) / 2
	offY := (targetH - newH) / 2
	xdraw.CatmullRom.Scale(canvas, image.Rect(offX, offY, offX+newW, offY+newH), img, img.Bounds(), xdraw.Over, nil)

	out, err := n.save(dest, canvas)
	if err != nil {
		n.logger.Warn("failed to normalize cover", "title", title, "path", coverPath, "error", err)
		return ""
	}
	return out
}

// GenerateIcon derives a square icon from a cover: proportionally
// thumbnailed to fit the configured size and centered on a transparent
// canvas. Returns "" when no icon could be produced.
func (n *Normalizer) GenerateIcon(title, coverPath string) string {
	if coverPath == "" {
		return ""
	}
	srcInfo, err := os.Stat(coverPath)
	if err != nil {
		return ""
	}

	dest := filepath.Join(n.iconDir, titles.SafeFilename(stemOr(coverPath, title), "png"))
	if cached, ok := n.upToDate(dest, srcInfo); ok {
		return cached
	}

	img, err := decode(coverPath)
	if err != nil {
		n.logger.Warn("failed to generate icon", "title", title, "path", coverPath, "error", err)
		return ""
	}

	newW, newH := thumbnailFit(img.Bounds().Dx(), img.Bounds().Dy(), n.iconSize)

	canvas := image.NewRGBA(image.Rect(0, 0, n.iconSize, n.iconSize))
	offX := (n.iconSize - newW) / 2
	offY := (n.iconSize - newH) / 2
	xdraw.CatmullRom.Scale(canvas, image.Rect(offX, offY, offX+newW, offY+newH), img, img.Bounds(), xdraw.Over, nil)

	out, err := n.save(dest, canvas)
	if err != nil {
		n.logger.Warn("failed to generate icon", "title", title, "path", coverPath, "error", err)
		return ""
	}
	return out
}

// upToDate reports whether dest already exists and is at least as new as
// the source, returning its absolute path when so.
func (n *Normalizer) upToDate(dest string, srcInfo os.FileInfo) (string, bool) {
	destInfo, err := os.Stat(dest)
	if err != nil || destInfo.ModTime().Before(srcInfo.ModTime()) {
		return "", false
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return dest, true
	}
	return abs, true
}

func (n *Normalizer) save(dest string, img image.Image) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", dest, err)
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return dest, nil
	}
	return abs, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnreadableImage, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnreadableImage, err)
	}
	return img, nil
}

func fill(img *image.RGBA, c color.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// thumbnailFit scales (srcW, srcH) to fit within a size×size square
// preserving aspect ratio, never enlarging.
func thumbnailFit(srcW, srcH, size int) (int, int) {
	if srcW <= size && srcH <= size {
		return max(1, srcW), max(1, srcH)
	}
	newW, newH := size, srcH*size/srcW
	if newH > size {
		newH = size
		newW = srcW * size / srcH
	}
	return max(1, newW), max(1, newH)
}

// stemOr returns the filename stem of path, or fallback when blank.
func stemOr(path, fallback string) string {
	base := filepath.Base(path)
	stem := base[:len(base)-len(filepath.Ext(base))]
	if stem == "" {
		return fallback
	}
	return stem
}
