package converter

import "testing"

func TestRewriteImagePaths_MediaDirectory(t *testing.T) {
	in := `<img src="mybook/media/fig01.png" alt="figure"/>`
	got := RewriteImagePaths(in, "mybook", "")
	want := `<img src="../images/fig01.png" alt="figure"/>`
	if got != want {
		t.Fatalf("RewriteImagePaths = %q, want %q", got, want)
	}
}

func TestRewriteImagePaths_BareImagesDirectory(t *testing.T) {
	in := `<img src="images/fig02.jpg"/>`
	got := RewriteImagePaths(in, "mybook", "")
	want := `<img src="../images/fig02.jpg"/>`
	if got != want {
		t.Fatalf("RewriteImagePaths = %q, want %q", got, want)
	}
}

func TestRewriteImagePaths_CoverNormalized(t *testing.T) {
	in := `<img src="mybook/media/9780134093413.jpg"/>`
	got := RewriteImagePaths(in, "mybook", "9780134093413.jpg")
	want := `<img src="../images/cover.jpg"/>`
	if got != want {
		t.Fatalf("RewriteImagePaths = %q, want %q", got, want)
	}
}

func TestRewriteImagePaths_OtherImagesUntouchedByCoverRule(t *testing.T) {
	in := `<img src="mybook/media/diagram.jpg"/>`
	got := RewriteImagePaths(in, "mybook", "9780134093413.jpg")
	want := `<img src="../images/diagram.jpg"/>`
	if got != want {
		t.Fatalf("RewriteImagePaths = %q, want %q", got, want)
	}
}
