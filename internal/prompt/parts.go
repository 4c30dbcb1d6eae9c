// ABOUTME: Structured prompt content model: text, file/agent mentions, image attachments
// ABOUTME: Parts flatten to the logical text the user sees; offsets stay contiguous

package prompt

import (
	"strings"

	"github.com/google/uuid"
)

// Part is one element of a prompt's ordered content sequence.
type Part interface {
	isPart()
}

// TextPart is a run of plain text. Content may embed newlines but never
// a mention.
type TextPart struct {
	Content string
	Start   int
	End     int
}

// FileAttachmentPart references a file by path. Content is the display
// form "@" + Path.
type FileAttachmentPart struct {
	Path    string
	Content string
	Start   int
	End     int
}

// AgentPart references a named agent. Content is "@" + Name.
type AgentPart struct {
	Name    string
	Content string
	Start   int
	End     int
}

// ImageAttachmentPart carries an attached image. It has no offsets and
// is excluded from flattening; by convention it sits at the end of the
// part list.
type ImageAttachmentPart struct {
	ID       string
	Filename string
	Mime     string
	DataURL  string
}

func (TextPart) isPart()            {}
func (FileAttachmentPart) isPart()  {}
func (AgentPart) isPart()           {}
func (ImageAttachmentPart) isPart() {}

// NewFileMention builds a FileAttachmentPart for path with display content.
func NewFileMention(path string) FileAttachmentPart {
	return FileAttachmentPart{Path: path, Content: "@" + path}
}

// NewAgentMention builds an AgentPart for name with display content.
func NewAgentMention(name string) AgentPart {
	return AgentPart{Name: name, Content: "@" + name}
}

// NewImageAttachment builds an ImageAttachmentPart with a fresh id.
func NewImageAttachment(filename, mime, dataURL string) ImageAttachmentPart {
	return ImageAttachmentPart{
		ID:       uuid.NewString(),
		Filename: filename,
		Mime:     mime,
		DataURL:  dataURL,
	}
}

// Content returns the display content of a part ("" for images).
func Content(p Part) string {
	switch p := p.(type) {
	case TextPart:
		return p.Content
	case FileAttachmentPart:
		return p.Content
	case AgentPart:
		return p.Content
	}
	return ""
}

// Flatten concatenates the content of all non-image parts in order,
// yielding the logical text the user sees.
func Flatten(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(Content(p))
	}
	return b.String()
}

// Reindex recomputes Start/End offsets so adjacent non-image parts are
// contiguous. Image parts are ordering-exempt and untouched. Returns
// the same slice for chaining.
func Reindex(parts []Part) []Part {
	off := 0
	for i, p := range parts {
		switch p := p.(type) {
		case TextPart:
			p.Start = off
			off += len([]rune(p.Content))
			p.End = off
			parts[i] = p
		case FileAttachmentPart:
			p.Start = off
			off += len([]rune(p.Content))
			p.End = off
			parts[i] = p
		case AgentPart:
			p.Start = off
			off += len([]rune(p.Content))
			p.End = off
			parts[i] = p
		}
	}
	return parts
}

// Empty reports whether parts contain no visible text and no images.
func Empty(parts []Part) bool {
	for _, p := range parts {
		tp, ok := p.(TextPart)
		if !ok {
			return false
		}
		if strings.TrimSpace(tp.Content) != "" {
			return false
		}
	}
	return true
}

// VisibleLength is the prompt's length in cursor space: text counts
// runes, a mention counts as one character, images count zero.
func VisibleLength(parts []Part) int {
	n := 0
	for _, p := range parts {
		switch t := p.(type) {
		case TextPart:
			n += len([]rune(t.Content))
		case FileAttachmentPart:
			n++
		case AgentPart:
			n++
		}
	}
	return n
}

// Images returns the image attachments in order.
func Images(parts []Part) []ImageAttachmentPart {
	var imgs []ImageAttachmentPart
	for _, p := range parts {
		if img, ok := p.(ImageAttachmentPart); ok {
			imgs = append(imgs, img)
		}
	}
	return imgs
}
