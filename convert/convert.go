package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/foomo/confluence-gateway/confluence/vo"
	"golang.org/x/net/html"
)

// ToMarkdown converts a Confluence export or storage HTML body into markdown
// for read responses. Writes never pass through here, they submit storage
// markup untouched.
func ToMarkdown(markup string) (vo.Markdown, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(doc)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return vo.Markdown(markdownBytes), nil
}
