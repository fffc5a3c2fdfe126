package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{20, 120, 60, 255})
		}
	}
	return img
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h))
	return buf.Bytes()
}

func encodeJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h), nil)
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name          string
		data          []byte
		width, height int
	}{
		{"small jpeg kept", encodeJPEG(64, 48), 64, 48},
		{"png becomes jpeg", encodePNG(80, 80), 80, 80},
		{"wide banner shrunk", encodePNG(2048, 512), 1024, 256},
		{"tall photo shrunk", encodeJPEG(600, 1800), 341, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Process(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if img.MIME != "image/jpeg" {
				t.Errorf("expected image/jpeg, got %s", img.MIME)
			}
			if img.Width != tt.width || img.Height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, img.Width, img.Height)
			}

			decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
			if err != nil {
				t.Fatalf("output is not a jpeg: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("encoded size %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestProcessRejects(t *testing.T) {
	inputs := map[string][]byte{
		"text": []byte("hello, not an image"),
		"gif":  []byte("GIF89a\x01\x00\x01\x00"),
	}
	for name, data := range inputs {
		if _, err := Process(bytes.NewReader(data)); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", name, err)
		}
	}

	huge := make([]byte, MaxUploadBytes+10)
	if _, err := Process(bytes.NewReader(huge)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestDataURI(t *testing.T) {
	img, err := Process(bytes.NewReader(encodePNG(10, 10)))
	if err != nil {
		t.Fatal(err)
	}
	uri := img.DataURI()

	prefix := "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected prefix in %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil || !bytes.Equal(raw, img.Data) {
		t.Errorf("data uri does not round trip: %v", err)
	}
}
