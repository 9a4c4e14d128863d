package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// SentenceDelimiters are the characters that end a line segment.
const SentenceDelimiters = ".,();`\":?!"

// LineSource produces text segments split on sentence punctuation.
type LineSource interface {
	Lines() ([]string, error)
}

// SplitText splits raw text into segments at sentence delimiters and blank
// lines. Each segment is stripped of leading and trailing non-letters and
// has its interior whitespace, newlines included, collapsed to single spaces.
// Case is preserved.
func SplitText(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		pieces := strings.FieldsFunc(para, func(r rune) bool {
			return strings.ContainsRune(SentenceDelimiters, r)
		})
		for _, p := range pieces {
			p = strings.TrimFunc(p, func(r rune) bool { return !unicode.IsLetter(r) })
			p = strings.Join(strings.Fields(p), " ")
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// TextSource reads plain text.
type TextSource struct {
	r io.Reader
}

// NewTextSource creates a line source over plain text.
func NewTextSource(r io.Reader) *TextSource {
	return &TextSource{r: r}
}

// Lines reads the whole input and splits it.
func (s *TextSource) Lines() ([]string, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return SplitText(string(data)), nil
}

// HTMLSource reads an HTML document and splits its visible text.
type HTMLSource struct {
	r io.Reader
}

// NewHTMLSource creates a line source over an HTML document.
func NewHTMLSource(r io.Reader) *HTMLSource {
	return &HTMLSource{r: r}
}

// blockElements end a segment even when the markup carries no punctuation.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"title": true, "section": true, "article": true, "blockquote": true, "pre": true,
}

// Lines parses the document, drops script and style content and splits the
// remaining text.
func (s *HTMLSource) Lines() ([]string, error) {
	doc, err := html.Parse(s.r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n\n")
		}
	}
	extractText(doc)

	return SplitText(buf.String()), nil
}

// ReadFile returns the lines of a .txt or .html file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src LineSource
	if IsHTML(path) {
		src = NewHTMLSource(f)
	} else {
		src = NewTextSource(f)
	}
	lines, err := src.Lines()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// IsHTML reports whether path has an HTML extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// IsSupported reports whether ReadFile can read path.
func IsSupported(path string) bool {
	return IsHTML(path) || strings.EqualFold(filepath.Ext(path), ".txt")
}
