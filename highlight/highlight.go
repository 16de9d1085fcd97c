// Package highlight 把源代码切成带语法高亮样式的行，
// 词法分析与配色由 chroma 完成，本包只负责换算成绘制用的样式片段。
package highlight

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ByLCY/gitprint/compose"
	"github.com/ByLCY/gitprint/layout"
)

// Highlighter 持有选定的配色方案，对多个文件复用。
type Highlighter struct {
	style    *chroma.Style
	fontSize float64
}

// New 按名字查找内置配色方案。名字未注册时返回错误而不是
// 静默退回默认配色，让调用方可以提示可用方案列表。
func New(theme string, fontSize float64) (*Highlighter, error) {
	if _, ok := styles.Registry[theme]; !ok {
		return nil, fmt.Errorf("未知的配色方案 %q", theme)
	}
	return &Highlighter{style: styles.Get(theme), fontSize: fontSize}, nil
}

// FromStyle 用现成的 chroma 配色构造，供自定义主题文件接入。
func FromStyle(style *chroma.Style, fontSize float64) *Highlighter {
	return &Highlighter{style: style, fontSize: fontSize}
}

// Themes 返回全部内置配色方案名，已排序。
func Themes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Lines 按 path 匹配词法器并把 content 切成带样式的行序列。
// 词法器缺失或分析失败时退化为无样式的纯文本行。
func (h *Highlighter) Lines(path, content string) iter.Seq[compose.Line] {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return PlainLines(content, h.fontSize)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return PlainLines(content, h.fontSize)
	}
	tokens := iterator.Tokens()

	return func(yield func(compose.Line) bool) {
		number := 1
		var spans []layout.Span
		for _, token := range tokens {
			parts := strings.Split(token.Value, "\n")
			for i, part := range parts {
				if i > 0 {
					if !yield(compose.Line{Number: number, Spans: spans}) {
						return
					}
					number++
					spans = nil
				}
				if part != "" {
					spans = append(spans, h.span(part, token.Type))
				}
			}
		}
		if len(spans) > 0 {
			yield(compose.Line{Number: number, Spans: spans})
		}
	}
}

// PlainLines 产出无高亮的行序列。
func PlainLines(content string, fontSize float64) iter.Seq[compose.Line] {
	return func(yield func(compose.Line) bool) {
		if content == "" {
			return
		}
		content = strings.TrimSuffix(content, "\n")
		for i, text := range strings.Split(content, "\n") {
			spans := []layout.Span{}
			if text != "" {
				spans = append(spans, layout.Span{Text: text, Size: fontSize})
			}
			if !yield(compose.Line{Number: i + 1, Spans: spans}) {
				return
			}
		}
	}
}

// span 把一个词法单元换算成绘制片段。
func (h *Highlighter) span(text string, typ chroma.TokenType) layout.Span {
	entry := h.style.Get(typ)
	s := layout.Span{Text: text, Size: h.fontSize}
	if entry.Colour.IsSet() {
		s.Color = layout.Color{
			R: int(entry.Colour.Red()),
			G: int(entry.Colour.Green()),
			B: int(entry.Colour.Blue()),
		}
	}
	switch {
	case entry.Bold == chroma.Yes && entry.Italic == chroma.Yes:
		s.Variant = layout.FontBoldItalic
	case entry.Bold == chroma.Yes:
		s.Variant = layout.FontBold
	case entry.Italic == chroma.Yes:
		s.Variant = layout.FontItalic
	}
	return s
}
