package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/foot-shape-mcp/internal/footshape"
)

func decodeResultPNG(t *testing.T, encoded string) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestCropToFoot(t *testing.T) {
	img := createPatternImage(100, 100)
	box := footshape.BoundingBox{MinX: 10, MaxX: 29, MinY: 5, MaxY: 44}

	result, err := CropToFoot(img, box, 0, 1.0)
	if err != nil {
		t.Fatalf("CropToFoot failed: %v", err)
	}

	if result.Width != 20 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 20x40", result.Width, result.Height)
	}
	if result.X1 != 10 || result.Y1 != 5 || result.X2 != 30 || result.Y2 != 45 {
		t.Errorf("region: got (%d,%d)-(%d,%d), want (10,5)-(30,45)", result.X1, result.Y1, result.X2, result.Y2)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded := decodeResultPNG(t, result.ImageBase64)
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("top-left of crop should be red, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestCropToFoot_PaddingClamped(t *testing.T) {
	img := createInMemoryImage(50, 50, color.RGBA{40, 40, 40, 255})
	box := footshape.BoundingBox{MinX: 2, MaxX: 20, MinY: 40, MaxY: 48}

	result, err := CropToFoot(img, box, 5, 1.0)
	if err != nil {
		t.Fatalf("CropToFoot failed: %v", err)
	}

	if result.X1 != 0 || result.Y1 != 35 || result.X2 != 26 || result.Y2 != 50 {
		t.Errorf("region: got (%d,%d)-(%d,%d), want (0,35)-(26,50)", result.X1, result.Y1, result.X2, result.Y2)
	}
	if result.Width != 26 || result.Height != 15 {
		t.Errorf("dimensions: got %dx%d, want 26x15", result.Width, result.Height)
	}
}

func TestCropToFoot_Scale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})
	box := footshape.BoundingBox{MinX: 0, MaxX: 49, MinY: 0, MaxY: 49}

	tests := []struct {
		scale float64
		want  int
	}{
		{2.0, 100},
		{0.5, 25},
		{1.0, 50},
		{0, 50}, // non-positive scale is ignored
	}

	for _, tt := range tests {
		result, err := CropToFoot(img, box, 0, tt.scale)
		if err != nil {
			t.Fatalf("CropToFoot(scale=%v) failed: %v", tt.scale, err)
		}
		if result.Width != tt.want || result.Height != tt.want {
			t.Errorf("scale %v: got %dx%d, want %dx%d", tt.scale, result.Width, result.Height, tt.want, tt.want)
		}
	}
}

func TestCropToFoot_Errors(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)

	if _, err := CropToFoot(img, footshape.BoundingBox{MinX: 1, MaxX: 5, MinY: 1, MaxY: 5}, -1, 1.0); err == nil {
		t.Error("expected error for negative padding")
	}
	if _, err := CropToFoot(img, footshape.BoundingBox{MinX: 30, MaxX: 40, MinY: 30, MaxY: 40}, 0, 1.0); err == nil {
		t.Error("expected error for region outside the image")
	}
}
