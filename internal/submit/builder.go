// ABOUTME: Default wire-part builder: editor parts plus comment context to RPC parts
// ABOUTME: The optimistic copy mirrors what the server will eventually echo

package submit

import (
	"fmt"

	"github.com/marigold-ai/atelier/internal/prompt"
	"github.com/marigold-ai/atelier/internal/rpc"
)

// BuildParts is the default PartBuilder. Comment context is prepended
// as a text part; editor parts follow in order; images go last.
func BuildParts(in BuildInput) (request []rpc.PromptPart, optimistic []prompt.Part) {
	if len(in.Comments) > 0 {
		text := commentBlock(in.Comments)
		request = append(request, rpc.PromptPart{Type: "text", Text: text})
		optimistic = append(optimistic, prompt.TextPart{Content: text})
	}

	for _, p := range in.Parts {
		switch p := p.(type) {
		case prompt.TextPart:
			if p.Content == "" {
				continue
			}
			request = append(request, rpc.PromptPart{Type: "text", Text: p.Content})
		case prompt.FileAttachmentPart:
			request = append(request, rpc.PromptPart{Type: "file", Path: p.Path})
		case prompt.AgentPart:
			request = append(request, rpc.PromptPart{Type: "agent", Name: p.Name})
		case prompt.ImageAttachmentPart:
			continue
		}
		optimistic = append(optimistic, p)
	}

	for _, img := range in.Images {
		request = append(request, rpc.PromptPart{
			Type:     "image",
			Mime:     img.Mime,
			Filename: img.Filename,
			URL:      img.DataURL,
		})
		optimistic = append(optimistic, img)
	}

	prompt.Reindex(optimistic)
	return request, optimistic
}

func commentBlock(comments []CommentItem) string {
	text := "Review comments:\n"
	for _, c := range comments {
		text += fmt.Sprintf("- %s:%d: %s\n", c.File, c.Line, c.Text)
	}
	return text
}
