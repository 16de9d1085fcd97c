package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/gitprint/layout"
)

var gutterColor = layout.Color{R: 150, G: 150, B: 150}

// renderFile 渲染单个文件：路径标题、灰色信息行，然后带行号
// 竖排逐行输出。超宽的行按字符宽度折到下一行，续行对齐到行号
// 竖排之后。
func renderFile(b *layout.PageBuilder, f *File, opts Options) {
	b.WriteLine([]layout.Span{
		{Text: f.Path, Variant: layout.FontBold, Size: opts.FontSize + 2},
	}, layout.AlignLeft)
	b.WriteLine([]layout.Span{
		{Text: entryNote(f), Size: tocMetaSize, Color: tocMetaColor},
	}, layout.AlignLeft)
	b.VerticalSpace(opts.Geometry.LineHeight / 2)

	gutter := 0
	if opts.LineNumbers {
		gutter = digits(f.LineCount) + 2
	}
	budget := opts.Geometry.Columns(opts.FontSize) - gutter
	indent := strings.Repeat(" ", gutter)

	if f.Lines == nil {
		return
	}
	for line := range f.Lines {
		rows := wrapSpans(line.Spans, budget)
		for i, row := range rows {
			var spans []layout.Span
			if opts.LineNumbers {
				num := indent
				if i == 0 {
					num = fmt.Sprintf("%*d  ", gutter-2, line.Number)
				}
				spans = append(spans, layout.Span{
					Text:  num,
					Size:  opts.FontSize,
					Color: gutterColor,
				})
			}
			spans = append(spans, row...)
			b.WriteLine(spans, layout.AlignLeft)
		}
	}
}

// wrapSpans 把一行内的样式片段按字符数预算切成若干显示行，
// 跨越边界的片段被拆开但保留原样式。空行产出单个空行。
func wrapSpans(spans []layout.Span, budget int) [][]layout.Span {
	if budget <= 0 {
		return [][]layout.Span{spans}
	}

	var rows [][]layout.Span
	var row []layout.Span
	used := 0
	flush := func() {
		rows = append(rows, row)
		row = nil
		used = 0
	}

	for _, s := range spans {
		text := s.Text
		for utf8.RuneCountInString(text) > budget-used {
			head := firstRunes(text, budget-used)
			if head != "" {
				part := s
				part.Text = head
				row = append(row, part)
			}
			text = text[len(head):]
			flush()
		}
		if text != "" {
			part := s
			part.Text = text
			row = append(row, part)
			used += utf8.RuneCountInString(text)
		}
	}
	if len(row) > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

// firstRunes 返回 s 开头最多 n 个字符构成的前缀。
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// digits 返回 n 的十进制位数，至少为 1。
func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
