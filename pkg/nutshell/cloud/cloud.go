// Package cloud renders ranked words as d3 word clouds in a standalone
// HTML page.
package cloud

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cognicore/nutshell/pkg/nutshell/rank"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Font size bounds used by NewPage.
const (
	DefaultMinSize = 20
	DefaultMaxSize = 100
)

const (
	d3Script      = "https://cdnjs.cloudflare.com/ajax/libs/d3/3.5.17/d3.js"
	d3CloudScript = "https://cdnjs.cloudflare.com/ajax/libs/d3-cloud/1.2.5/d3.layout.cloud.js"
	width         = 1024
	height        = 800
)

// Word is one word of a cloud with its font size.
type Word struct {
	Text string `json:"text"`
	Size int    `json:"size"`
}

// Normalize maps item scores linearly onto [minSize, maxSize]. The best
// item gets maxSize and the worst gets minSize. When all scores are equal
// every word gets maxSize.
func Normalize(items []rank.ScoredWord, minSize, maxSize int) []Word {
	if len(items) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, it := range items {
		lo = math.Min(lo, it.Score)
		hi = math.Max(hi, it.Score)
	}

	out := make([]Word, len(items))
	if hi == lo {
		for i, it := range items {
			out[i] = Word{Text: it.Text, Size: maxSize}
		}
		return out
	}

	m := float64(maxSize-minSize) / (hi - lo)
	b := float64(maxSize) - m*hi
	for i, it := range items {
		out[i] = Word{Text: it.Text, Size: int(math.Round(m*it.Score + b))}
	}
	return out
}

type dataSet struct {
	name  string
	words []Word
}

// Page is an HTML page holding one word cloud per data set.
type Page struct {
	minSize, maxSize int
	sets             []dataSet
}

// NewPage creates an empty page using the default font size bounds.
func NewPage() *Page {
	return &Page{minSize: DefaultMinSize, maxSize: DefaultMaxSize}
}

// AddDataSet adds a named cloud. Clouds render in the order they are added.
func (p *Page) AddDataSet(name string, items []rank.ScoredWord) {
	p.sets = append(p.sets, dataSet{name: name, words: Normalize(items, p.minSize, p.maxSize)})
}

// Len returns the number of data sets.
func (p *Page) Len() int {
	return len(p.sets)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	doc, err := p.document()
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}

// WriteFile renders the page to the named file.
func (p *Page) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := p.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func (p *Page) document() (*html.Node, error) {
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element(atom.Script, html.Attribute{Key: "src", Val: d3Script}))
	head.AppendChild(element(atom.Script, html.Attribute{Key: "src", Val: d3CloudScript}))

	body := element(atom.Body)
	body.AppendChild(script(drawFunction))

	for _, set := range p.sets {
		words := set.words
		if words == nil {
			words = []Word{}
		}
		payload, err := json.Marshal(words)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", set.name, err)
		}
		h2 := element(atom.H2)
		h2.AppendChild(text(set.name))
		body.AppendChild(h2)
		body.AppendChild(script(fmt.Sprintf(layoutTemplate, width, height, payload)))
	}

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return doc, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// script builds a script element. Script children render unescaped.
func script(src string) *html.Node {
	s := element(atom.Script)
	s.AppendChild(text(src))
	return s
}

var drawFunction = fmt.Sprintf(`
    var fill = d3.scale.category20();
    function draw(words) {
        d3.select("body").append("svg")
            .attr("width", %d)
            .attr("height", %d)
            .append("g")
            .attr("transform", "translate(%d, %d)")
            .selectAll("text")
            .data(words)
            .enter().append("text")
            .style("font-size", function(d) { return d.size + "px"; })
            .style("font-family", "Impact")
            .style("fill", function(d, i) { return fill(i); })
            .attr("text-anchor", "middle")
            .attr("transform", function(d) {
                return "translate(" + [d.x, d.y] + ")rotate(" + d.rotate + ")";
            })
            .text(function(d) { return d.text; });
    }
`, width, height, width/2, height/2)

const layoutTemplate = `
    d3.layout.cloud().size([%d, %d])
        .words(%s)
        .rotate(function() { return ~~(Math.random() * 2) * 90; })
        .font("Impact")
        .fontSize(function(d) { return d.size; })
        .on("end", draw)
        .start();
`
