package epub

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

func TestDiscoverCover_DeclaredWins(t *testing.T) {
	images := []string{"fig01.jpg", "9780134093413.jpg", "coverart.jpg"}
	if got := discoverCover("9780134093413.jpg", images); got != "9780134093413.jpg" {
		t.Fatalf("discoverCover = %q", got)
	}
}

func TestDiscoverCover_DeclaredAbsentFallsThrough(t *testing.T) {
	images := []string{"fig01.jpg", "bookcvr.jpg"}
	if got := discoverCover("missing.jpg", images); got != "bookcvr.jpg" {
		t.Fatalf("discoverCover = %q", got)
	}
}

func TestDiscoverCover_NameHeuristics(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{"cvr marker", []string{"fig01.jpg", "xyzcvr1.jpg"}, "xyzcvr1.jpg"},
		{"cover marker", []string{"fig01.png", "MyCover.png"}, "MyCover.png"},
		{"title page jpeg", []string{"fig01.png", "tp.jpg"}, "tp.jpg"},
		{"first jpeg", []string{"fig01.png", "b.jpg", "a.jpg"}, "b.jpg"},
		{"nothing", []string{"fig01.png"}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discoverCover("", tt.images); got != tt.want {
				t.Fatalf("discoverCover(%v) = %q, want %q", tt.images, got, tt.want)
			}
		})
	}
}

func TestCoverThumbnail_ResizesTallImage(t *testing.T) {
	src := imaging.New(600, 900, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG); err != nil {
		t.Fatal(err)
	}

	thumb := coverThumbnail(buf.Bytes(), zap.NewNop())
	img, err := imaging.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail not decodable: %v", err)
	}
	if h := img.Bounds().Dy(); h != thumbHeight {
		t.Fatalf("thumbnail height = %d, want %d", h, thumbHeight)
	}
}

func TestCoverThumbnail_UndecodableSourceCopied(t *testing.T) {
	src := []byte("not an image")
	thumb := coverThumbnail(src, zap.NewNop())
	if !bytes.Equal(thumb, src) {
		t.Fatalf("undecodable source not copied through")
	}
}
