package imaging

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/lbx/internal/shared"
)

func testConfig(t *testing.T) shared.MediaConfig {
	t.Helper()
	out := t.TempDir()
	return shared.MediaConfig{
		ImageExtensions: []string{"png"},
		Icon:            shared.IconConfig{Dir: filepath.Join(out, "icons"), Size: 64},
		Cover: shared.CoverConfig{
			Dir:        filepath.Join(out, "covers"),
			MinWidth:   60,
			MinHeight:  90,
			MaxStretch: 2.0,
		},
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
		img.Pix[i+3] = 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestNormalizeCover(t *testing.T) {
	logger := shared.NewLogger(os.Stderr)

	t.Run("canvas matches target dimensions", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Doom.png")
		writePNG(t, src, 30, 45)

		out := n.NormalizeCover("Doom", src, 0)
		if out == "" {
			t.Fatal("NormalizeCover returned no path")
		}
		img := decodeFile(t, out)
		if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 90 {
			t.Errorf("canvas = %dx%d, want 60x90", img.Bounds().Dx(), img.Bounds().Dy())
		}
	})

	t.Run("width override raises the canvas", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Doom.png")
		writePNG(t, src, 120, 180)

		out := n.NormalizeCover("Doom", src, 120)
		img := decodeFile(t, out)
		if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 180 {
			t.Errorf("canvas = %dx%d, want 120x180", img.Bounds().Dx(), img.Bounds().Dy())
		}
	})

	t.Run("stretch cap pads instead of upscaling", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Tiny.png")
		writePNG(t, src, 10, 15)

		out := n.NormalizeCover("Tiny", src, 0)
		img := decodeFile(t, out)
		// Canvas keeps its full size; the capped 2.0 scale leaves a border.
		if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 90 {
			t.Fatalf("canvas = %dx%d, want 60x90", img.Bounds().Dx(), img.Bounds().Dy())
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
			t.Error("cover background should be opaque")
		}
		if r, g, b, _ := img.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0 {
			t.Error("cover border should be black")
		}
	})

	t.Run("second call is a cache hit", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Doom.png")
		writePNG(t, src, 30, 45)
		old := time.Now().Add(-time.Hour)
		if err := os.Chtimes(src, old, old); err != nil {
			t.Fatal(err)
		}

		out := n.NormalizeCover("Doom", src, 0)
		first, err := os.Stat(out)
		if err != nil {
			t.Fatal(err)
		}

		if again := n.NormalizeCover("Doom", src, 0); again != out {
			t.Errorf("second call = %q, want %q", again, out)
		}
		second, err := os.Stat(out)
		if err != nil {
			t.Fatal(err)
		}
		if !second.ModTime().Equal(first.ModTime()) {
			t.Error("cache hit should not rewrite the output")
		}
	})

	t.Run("unreadable source produces nothing", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "garbage.png")
		if err := os.WriteFile(src, []byte("not an image"), 0644); err != nil {
			t.Fatal(err)
		}

		if out := n.NormalizeCover("Garbage", src, 0); out != "" {
			t.Errorf("NormalizeCover() = %q, want empty", out)
		}
	})

	t.Run("missing source produces nothing", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		if out := n.NormalizeCover("Missing", filepath.Join(t.TempDir(), "absent.png"), 0); out != "" {
			t.Errorf("NormalizeCover() = %q, want empty", out)
		}
	})
}

func TestGenerateIcon(t *testing.T) {
	logger := shared.NewLogger(os.Stderr)

	t.Run("square transparent canvas", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Doom.png")
		writePNG(t, src, 100, 40)

		out := n.GenerateIcon("Doom", src)
		if out == "" {
			t.Fatal("GenerateIcon returned no path")
		}
		img := decodeFile(t, out)
		if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
			t.Fatalf("canvas = %dx%d, want 64x64", img.Bounds().Dx(), img.Bounds().Dy())
		}
		// Wide source leaves transparent bands above and below.
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Error("icon corner should be transparent")
		}
	})

	t.Run("small source is not enlarged", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "Small.png")
		writePNG(t, src, 16, 16)

		out := n.GenerateIcon("Small", src)
		img := decodeFile(t, out)
		// Center pixel carries the source; the area just outside the
		// centered 16x16 region stays transparent.
		if _, _, _, a := img.At(32, 32).RGBA(); a == 0 {
			t.Error("icon center should carry the source image")
		}
		if _, _, _, a := img.At(10, 32).RGBA(); a != 0 {
			t.Error("area outside the un-enlarged source should be transparent")
		}
	})

	t.Run("unreadable source produces nothing", func(t *testing.T) {
		n := NewNormalizer(testConfig(t), logger)
		src := filepath.Join(t.TempDir(), "garbage.png")
		if err := os.WriteFile(src, []byte("nope"), 0644); err != nil {
			t.Fatal(err)
		}
		if out := n.GenerateIcon("Garbage", src); out != "" {
			t.Errorf("GenerateIcon() = %q, want empty", out)
		}
	})
}
