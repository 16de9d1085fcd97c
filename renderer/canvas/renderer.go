// Package canvasrenderer 通过 github.com/tdewolff/canvas 序列化文档。
// 该后端需要调用方提供 TTF 字体，换来任意 Unicode 文本的完整渲染；
// canvas 的 PDF 写出器不支持链接标注，目录与提交里的链接会被跳过。
package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/gitprint/compose"
	"github.com/ByLCY/gitprint/layout"
	"github.com/ByLCY/gitprint/renderer"
)

// Renderer draws assembled pages via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
	styles map[layout.FontVariant]canvas.FontStyle
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// Regular 必须提供；其余字重缺省时退回常规字重。
	Regular    Resource
	Bold       Resource
	Italic     Resource
	BoldItalic Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

func (r Resource) load() ([]byte, error) {
	if len(r.Bytes) > 0 {
		return r.Bytes, nil
	}
	if r.Path != "" {
		return os.ReadFile(r.Path)
	}
	return nil, nil
}

// NewRenderer creates a canvas-based renderer with the given fonts.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *compose.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, errors.New("缺少可渲染的页面")
	}
	if err := r.ensureFamily(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	first := doc.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	writer.SetInfo(doc.Title, "", "", "", "gitprint")

	linkDropped := false
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		r.drawPage(ctx, &page)
		c.RenderTo(writer)
		if len(page.Links) > 0 {
			linkDropped = true
		}
	}
	if linkDropped {
		slog.Warn("canvas 后端不支持链接标注，目录跳转与外部链接已省略")
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page *layout.Page) {
	for _, op := range page.Texts {
		face := r.family.Face(op.Size, colorFromLayout(op.Color), r.styles[op.Variant], canvas.FontNormal)
		line := canvas.NewTextLine(face, op.Text, canvas.Left)
		ctx.DrawText(toMm(op.X), toMm(op.Y), line)
	}
}

// ensureFamily 把四个字重装进同一个字体族，缺省字重退回常规。
func (r *Renderer) ensureFamily() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return nil
	}

	regular, err := r.opts.Regular.load()
	if err != nil {
		return fmt.Errorf("读取常规字体: %w", err)
	}
	if len(regular) == 0 {
		return errors.New("canvas 后端需要提供常规字重的 TTF 字体")
	}

	family := canvas.NewFontFamily("gitprint-mono")
	styles := map[layout.FontVariant]canvas.FontStyle{
		layout.FontRegular:    canvas.FontRegular,
		layout.FontBold:       canvas.FontBold,
		layout.FontItalic:     canvas.FontItalic,
		layout.FontBoldItalic: canvas.FontBold | canvas.FontItalic,
	}
	variants := map[layout.FontVariant]Resource{
		layout.FontRegular:    r.opts.Regular,
		layout.FontBold:       r.opts.Bold,
		layout.FontItalic:     r.opts.Italic,
		layout.FontBoldItalic: r.opts.BoldItalic,
	}
	for variant, res := range variants {
		data, err := res.load()
		if err != nil {
			return fmt.Errorf("读取字体: %w", err)
		}
		if len(data) == 0 {
			if variant == layout.FontRegular {
				data = regular
			} else {
				// 字重缺省时让样式表也退回常规，避免合成假粗体。
				styles[variant] = canvas.FontRegular
				continue
			}
		}
		if err := family.LoadFont(data, 0, styles[variant]); err != nil {
			return fmt.Errorf("加载字体: %w", err)
		}
	}

	r.family = family
	r.styles = styles
	return nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
