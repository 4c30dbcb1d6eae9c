// ABOUTME: Image attachment intake: format sniffing, dimension extraction, data URLs
// ABOUTME: Parses PNG, JPEG, GIF, and WebP headers without a full decode

package attach

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marigold-ai/atelier/internal/prompt"
)

// MaxImageBytes caps an attached image's size.
const MaxImageBytes = 10 << 20

// Dimensions holds the pixel size of an image.
type Dimensions struct {
	Width  int
	Height int
}

// SniffMime identifies the image format from header bytes. Returns ""
// for unrecognized data.
func SniffMime(data []byte) string {
	if len(data) < 12 {
		return ""
	}
	switch {
	case data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return "image/png"
	case data[0] == 0xFF && data[1] == 0xD8:
		return "image/jpeg"
	case data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return "image/gif"
	case string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	}
	return ""
}

// FromBytes validates image data and builds an attachment part. The
// filename is reduced to its base name for display.
func FromBytes(filename string, data []byte) (prompt.ImageAttachmentPart, error) {
	if len(data) == 0 {
		return prompt.ImageAttachmentPart{}, fmt.Errorf("empty image data")
	}
	if len(data) > MaxImageBytes {
		return prompt.ImageAttachmentPart{}, fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	mime := SniffMime(data)
	if mime == "" {
		return prompt.ImageAttachmentPart{}, fmt.Errorf("unrecognized image format")
	}
	if _, err := GetDimensions(data); err != nil {
		return prompt.ImageAttachmentPart{}, fmt.Errorf("reading image header: %w", err)
	}
	url := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return prompt.NewImageAttachment(filepath.Base(filename), mime, url), nil
}

// DecodeDataURL extracts the raw bytes and mime type from a data URL.
func DecodeDataURL(url string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mime, _, _ = strings.Cut(meta, ";")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL payload: %w", err)
	}
	return mime, data, nil
}

// GetDimensions extracts width and height from image header bytes.
// Supports PNG, JPEG, GIF, and WebP.
func GetDimensions(data []byte) (Dimensions, error) {
	if len(data) < 8 {
		return Dimensions{}, fmt.Errorf("data too short (%d bytes)", len(data))
	}
	switch SniffMime(data) {
	case "image/png":
		return pngDimensions(data)
	case "image/jpeg":
		return jpegDimensions(data)
	case "image/gif":
		return gifDimensions(data)
	case "image/webp":
		return webpDimensions(data)
	}
	return Dimensions{}, fmt.Errorf("unrecognized image format")
}

// pngDimensions reads width/height from the IHDR chunk.
func pngDimensions(data []byte) (Dimensions, error) {
	if len(data) < 24 {
		return Dimensions{}, fmt.Errorf("PNG data too short for IHDR")
	}
	w := int(binary.BigEndian.Uint32(data[16:20]))
	h := int(binary.BigEndian.Uint32(data[20:24]))
	return Dimensions{Width: w, Height: h}, nil
}

// jpegDimensions scans for SOF markers (0xFFC0-0xFFC2).
func jpegDimensions(data []byte) (Dimensions, error) {
	i := 2
	for i < len(data)-1 {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]

		if marker >= 0xC0 && marker <= 0xC2 {
			if i+9 >= len(data) {
				return Dimensions{}, fmt.Errorf("JPEG SOF truncated")
			}
			h := int(binary.BigEndian.Uint16(data[i+5 : i+7]))
			w := int(binary.BigEndian.Uint16(data[i+7 : i+9]))
			return Dimensions{Width: w, Height: h}, nil
		}

		if i+3 >= len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			break
		}
		i += 2 + segLen
	}
	return Dimensions{}, fmt.Errorf("JPEG SOF marker not found")
}

// gifDimensions reads the logical screen descriptor.
func gifDimensions(data []byte) (Dimensions, error) {
	if len(data) < 10 {
		return Dimensions{}, fmt.Errorf("GIF data too short for header")
	}
	w := int(binary.LittleEndian.Uint16(data[6:8]))
	h := int(binary.LittleEndian.Uint16(data[8:10]))
	return Dimensions{Width: w, Height: h}, nil
}

// webpDimensions handles VP8, VP8L, and VP8X chunk formats.
func webpDimensions(data []byte) (Dimensions, error) {
	if len(data) < 16 {
		return Dimensions{}, fmt.Errorf("WebP data too short")
	}

	chunk := string(data[12:16])
	switch chunk {
	case "VP8 ":
		if len(data) < 30 {
			return Dimensions{}, fmt.Errorf("WebP VP8 data too short")
		}
		w := int(binary.LittleEndian.Uint16(data[26:28])) & 0x3FFF
		h := int(binary.LittleEndian.Uint16(data[28:30])) & 0x3FFF
		return Dimensions{Width: w, Height: h}, nil

	case "VP8L":
		if len(data) < 25 {
			return Dimensions{}, fmt.Errorf("WebP VP8L data too short")
		}
		bits := binary.LittleEndian.Uint32(data[21:25])
		w := int(bits&0x3FFF) + 1
		h := int((bits>>14)&0x3FFF) + 1
		return Dimensions{Width: w, Height: h}, nil

	case "VP8X":
		if len(data) < 30 {
			return Dimensions{}, fmt.Errorf("WebP VP8X data too short")
		}
		w := (int(data[24]) | int(data[25])<<8 | int(data[26])<<16) + 1
		h := (int(data[27]) | int(data[28])<<8 | int(data[29])<<16) + 1
		return Dimensions{Width: w, Height: h}, nil

	default:
		return Dimensions{}, fmt.Errorf("unknown WebP chunk: %s", chunk)
	}
}
