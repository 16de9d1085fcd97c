package compose

import (
	"fmt"

	"github.com/ByLCY/gitprint/layout"
)

const (
	sectionTitleSize = 16.0
	tocPathSize      = 8.0
	tocMetaSize      = 7.0
	// 页码栏位固定为 4 位十进制，试排与重排因此得到相同的行宽，
	// 进而得到相同的页数。页码本身不参与排版决策。
	tocPageFormat = "%4d"
	// 路径右侧为注释与页码预留的字符数。
	tocReserveCols = 10
)

var tocMetaColor = layout.Color{R: 96, G: 96, B: 96}

// renderTOC 渲染目录。real 为 false 时是占位试排：页码一律写 0，
// 不加链接，产出仅用于统计页数。
func renderTOC(entries []*tocEntry, startPage int, real bool, opts Options) []layout.Page {
	b := layout.NewBuilder(opts.Geometry, startPage)
	if len(entries) == 0 {
		return b.Finish()
	}

	b.WriteCentered(layout.Span{
		Text:    "Table of Contents",
		Variant: layout.FontBold,
		Size:    sectionTitleSize,
	})
	b.VerticalSpace(opts.Geometry.LineHeight)

	budget := opts.Geometry.Columns(tocPathSize) - tocReserveCols
	for _, e := range entries {
		writeEntry(b, e, budget, real)
	}
	return b.Finish()
}

// writeEntry 输出一个目录条目。过长的路径按字符宽度硬折行，
// 注释与页码跟在最后一段路径所在的行上；链接锚定到这一行。
func writeEntry(b *layout.PageBuilder, e *tocEntry, budget int, real bool) {
	page := 0
	if real {
		page = e.startPage
	}

	chunks := layout.HardWrap(e.file.Path, budget)
	for _, chunk := range chunks[:len(chunks)-1] {
		b.WriteLine([]layout.Span{
			{Text: chunk, Size: tocPathSize},
		}, layout.AlignLeft)
	}

	left := []layout.Span{
		{Text: chunks[len(chunks)-1], Size: tocPathSize},
		{Text: "  " + entryNote(e.file), Size: tocMetaSize, Color: tocMetaColor},
	}
	right := []layout.Span{
		{Text: fmt.Sprintf(tocPageFormat, page), Size: tocPathSize},
	}
	b.WriteJustified(left, right)
	if real && e.startPage > 0 {
		b.AddLink(0, layout.Link{Kind: layout.LinkPage, Page: e.startPage})
	}
}

// entryNote 生成条目的灰色注释，例如 "(128 lines, 4.2 kB, 2024-03-01)"。
func entryNote(f *File) string {
	note := fmt.Sprintf("(%d lines", f.LineCount)
	if f.SizeLabel != "" {
		note += ", " + f.SizeLabel
	}
	if f.Modified != "" {
		note += ", " + f.Modified
	}
	return note + ")"
}
