package cloud

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/nutshell/pkg/nutshell/rank"
)

func TestNormalize(t *testing.T) {
	items := []rank.ScoredWord{
		{Text: "lamp", Score: 10},
		{Text: "big", Score: 5},
		{Text: "mary", Score: 0},
	}
	got := Normalize(items, 20, 100)
	want := []Word{{"lamp", 100}, {"big", 60}, {"mary", 20}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeEqualScores(t *testing.T) {
	items := []rank.ScoredWord{{Text: "a", Score: 2}, {Text: "b", Score: 2}}
	for _, w := range Normalize(items, 20, 100) {
		if w.Size != 100 {
			t.Errorf("equal scores should map to max size, %q got %d", w.Text, w.Size)
		}
	}
	if got := Normalize(nil, 20, 100); got != nil {
		t.Errorf("Normalize(nil) = %v", got)
	}
}

func TestRenderPage(t *testing.T) {
	p := NewPage()
	p.AddDataSet("text.txt", []rank.ScoredWord{{Text: "lamp", Score: 2}, {Text: "big", Score: 1}})
	p.AddDataSet("Full <Corpus>", nil)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("page should start with a doctype, got %q", out[:min(len(out), 40)])
	}
	for _, want := range []string{
		`<meta charset="utf-8"/>`,
		`d3.layout.cloud.js`,
		`{"text":"lamp","size":100}`,
		`{"text":"big","size":20}`,
		`.words([])`,
		`<h2>Full &lt;Corpus&gt;</h2>`,
		`function draw(words)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	first := strings.Index(out, "<h2>text.txt</h2>")
	second := strings.Index(out, "<h2>Full &lt;Corpus&gt;</h2>")
	if first < 0 || second < first {
		t.Errorf("data sets should render in insertion order (%d, %d)", first, second)
	}
}

func TestRenderEscapesScriptPayload(t *testing.T) {
	p := NewPage()
	p.AddDataSet("x", []rank.ScoredWord{{Text: "</script><b>", Score: 1}})

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "</script><b>") {
		t.Error("word text must not close the script element")
	}
}

func TestWriteFile(t *testing.T) {
	p := NewPage()
	p.AddDataSet("words", []rank.ScoredWord{{Text: "a", Score: 1}, {Text: "b", Score: 3}})

	path := filepath.Join(t.TempDir(), "nutshell.html")
	if err := p.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `{"text":"b","size":100}`) || !strings.Contains(string(data), `{"text":"a","size":20}`) {
		t.Errorf("sizes should follow the default bounds: %s", data)
	}

	if err := p.WriteFile(filepath.Join(t.TempDir(), "missing", "out.html")); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}
