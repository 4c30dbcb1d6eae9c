// ABOUTME: Tests for image sniffing, dimension parsing, and data URL handling

package attach

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"
)

func pngHeader(w, h uint32) []byte {
	data := make([]byte, 24)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'})
	binary.BigEndian.PutUint32(data[8:12], 13)
	copy(data[12:16], "IHDR")
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	return data
}

func gifHeader(w, h uint16) []byte {
	data := make([]byte, 10)
	copy(data, "GIF89a")
	binary.LittleEndian.PutUint16(data[6:8], w)
	binary.LittleEndian.PutUint16(data[8:10], h)
	return data
}

func TestSniffMime(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", pngHeader(1, 1), "image/png"},
		{"gif", gifHeader(1, 1), "image/gif"},
		{"jpeg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 12)...), "image/jpeg"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"garbage", []byte("not an image at all"), ""},
		{"short", []byte{0x89, 'P'}, ""},
	}
	for _, tt := range tests {
		if got := SniffMime(tt.data); got != tt.want {
			t.Errorf("%s: SniffMime = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGetDimensionsPNG(t *testing.T) {
	d, err := GetDimensions(pngHeader(640, 480))
	if err != nil {
		t.Fatalf("GetDimensions() error = %v", err)
	}
	if d.Width != 640 || d.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", d.Width, d.Height)
	}
}

func TestGetDimensionsGIF(t *testing.T) {
	d, err := GetDimensions(gifHeader(320, 200))
	if err != nil {
		t.Fatalf("GetDimensions() error = %v", err)
	}
	if d.Width != 320 || d.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 320x200", d.Width, d.Height)
	}
}

func TestGetDimensionsTruncated(t *testing.T) {
	if _, err := GetDimensions(pngHeader(1, 1)[:12]); err == nil {
		t.Error("GetDimensions() = nil error for truncated PNG")
	}
	if _, err := GetDimensions([]byte{1, 2, 3}); err == nil {
		t.Error("GetDimensions() = nil error for tiny input")
	}
}

func TestFromBytes(t *testing.T) {
	part, err := FromBytes("/tmp/shots/screen.png", pngHeader(10, 10))
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if part.Filename != "screen.png" {
		t.Errorf("Filename = %q, want base name", part.Filename)
	}
	if part.Mime != "image/png" {
		t.Errorf("Mime = %q, want image/png", part.Mime)
	}
	if part.ID == "" {
		t.Error("ID is empty")
	}
	if !strings.HasPrefix(part.DataURL, "data:image/png;base64,") {
		t.Errorf("DataURL = %q, want data URL prefix", part.DataURL)
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes("x.bin", []byte("plain text, definitely no image")); err == nil {
		t.Error("FromBytes() = nil error for non-image data")
	}
	if _, err := FromBytes("x.png", nil); err == nil {
		t.Error("FromBytes() = nil error for empty data")
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	raw := pngHeader(2, 3)
	part, err := FromBytes("a.png", raw)
	if err != nil {
		t.Fatal(err)
	}
	mime, data, err := DecodeDataURL(part.DataURL)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if base64.StdEncoding.EncodeToString(data) != base64.StdEncoding.EncodeToString(raw) {
		t.Error("decoded bytes differ from original")
	}
}

func TestDecodeDataURLRejectsMalformed(t *testing.T) {
	for _, url := range []string{"", "http://x/y.png", "data:image/png;base64", "data:image/png;base64,!!!"} {
		if _, _, err := DecodeDataURL(url); err == nil {
			t.Errorf("DecodeDataURL(%q) = nil error", url)
		}
	}
}
