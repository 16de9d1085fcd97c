package canvasrenderer

import (
	"testing"

	"github.com/ByLCY/gitprint/compose"
	"github.com/ByLCY/gitprint/layout"
)

func testDoc() *compose.Document {
	geom := layout.Geometry{PageWidth: 595, PageHeight: 842, Margin: 28, LineHeight: 10}
	b := layout.NewBuilder(geom, 1)
	b.WriteLine([]layout.Span{{Text: "hello", Size: 8}}, layout.AlignLeft)
	return &compose.Document{Title: "demo", Pages: b.Finish()}
}

func TestRenderRejectsEmptyDocument(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(&compose.Document{}); err == nil {
		t.Fatal("空文档应返回错误")
	}
}

func TestRenderRequiresRegularFont(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(testDoc()); err == nil {
		t.Fatal("未提供常规字体应返回错误")
	}
}

func TestRenderFailsOnMissingFontFile(t *testing.T) {
	r := NewRenderer(Options{Regular: Resource{Path: "/no/such/font.ttf"}})
	if _, err := r.Render(testDoc()); err == nil {
		t.Fatal("字体文件不存在应返回错误")
	}
}
