// Package fpdf 把组装好的文档序列化为 PDF，支持页内跳转与
// 外部链接标注。默认使用 PDF 内置的 Courier 等宽字体，不依赖
// 任何字体文件；传入 TTF 路径可以换成自定义等宽字体以获得完整
// 的 Unicode 覆盖。
package fpdf

import (
	"bytes"
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/gitprint/compose"
	"github.com/ByLCY/gitprint/layout"
)

// Options 控制 PDF 序列化。
type Options struct {
	// FontFile 是常规字重的 TTF 路径。为空时使用内置 Courier，
	// 文本会按 cp1252 转写，超出该字符集的字符退化为替代符。
	FontFile string
	// 粗体、斜体、粗斜体字重的 TTF 路径，缺省时复用 FontFile。
	BoldFontFile       string
	ItalicFontFile     string
	BoldItalicFontFile string
	// Creator 写入 PDF 元信息，为空时省略。
	Creator string
}

// Renderer 实现 renderer.Renderer。
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render 把文档写成 PDF 字节流。页面按文档内顺序输出，
// 页内跳转直接引用文档页码，页码连续时与 PDF 页序一致。
func (r *Renderer) Render(doc *compose.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, errors.New("文档没有任何页面")
	}

	first := doc.Pages[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if r.opts.Creator != "" {
		pdf.SetCreator(r.opts.Creator, true)
	}

	family, translate, err := r.setupFont(pdf)
	if err != nil {
		return nil, err
	}

	for i := range doc.Pages {
		page := &doc.Pages[i]
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for _, op := range page.Texts {
			pdf.SetFont(family, op.Variant.String(), op.Size)
			pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.Text(op.X, op.Y, translate(op.Text))
		}
		for _, op := range page.Links {
			r.emitLink(pdf, op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写出 PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// emitLink 生成一个链接标注。页内跳转允许前向引用，
// 目标页在输出时才解析。
func (r *Renderer) emitLink(pdf *fpdf.Fpdf, op layout.LinkOp) {
	switch op.Link.Kind {
	case layout.LinkURI:
		pdf.LinkString(op.X, op.Y, op.Width, op.Height, op.Link.URI)
	case layout.LinkPage:
		id := pdf.AddLink()
		pdf.SetLink(id, 0, op.Link.Page)
		pdf.Link(op.X, op.Y, op.Width, op.Height, id)
	}
}

// setupFont 注册字体并返回字体族名与文本转写函数。
func (r *Renderer) setupFont(pdf *fpdf.Fpdf) (string, func(string) string, error) {
	if r.opts.FontFile == "" {
		// 内置字体只覆盖 cp1252，转写器把覆盖外的字符换成替代符。
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		if err := pdf.Error(); err != nil {
			return "", nil, fmt.Errorf("初始化字符转写: %w", err)
		}
		return "Courier", tr, nil
	}

	styleFile := map[string]string{
		"":   r.opts.FontFile,
		"B":  fallback(r.opts.BoldFontFile, r.opts.FontFile),
		"I":  fallback(r.opts.ItalicFontFile, r.opts.FontFile),
		"BI": fallback(r.opts.BoldItalicFontFile, r.opts.FontFile),
	}
	for style, file := range styleFile {
		pdf.AddUTF8Font("mono", style, file)
	}
	if err := pdf.Error(); err != nil {
		return "", nil, fmt.Errorf("加载字体 %s: %w", r.opts.FontFile, err)
	}
	identity := func(s string) string { return s }
	return "mono", identity, nil
}

func fallback(path, def string) string {
	if path == "" {
		return def
	}
	return path
}
