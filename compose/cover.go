package compose

import (
	"strconv"

	"github.com/ByLCY/gitprint/layout"
)

const (
	coverTitleSize = 28.0
	coverLabelSize = 10.0
)

// renderCover 渲染封面页。封面始终从第 1 页开始。
func renderCover(meta Metadata, opts Options) []layout.Page {
	b := layout.NewBuilder(opts.Geometry, 1)
	lh := opts.Geometry.LineHeight

	// 首页是惰性建立的，翻页前的空白会被丢弃，
	// 顶部留白用空行写入来实现。
	for i := 0; i < 6; i++ {
		b.WriteLine(nil, layout.AlignLeft)
	}
	b.WriteCentered(layout.Span{
		Text:    meta.Name,
		Variant: layout.FontBold,
		Size:    coverTitleSize,
	})
	b.VerticalSpace(4 * lh)

	writeField(b, "Branch", meta.Branch)
	commit := meta.ShortHash
	if meta.CommitDate != "" {
		commit += " (" + meta.CommitDate + ")"
	}
	writeField(b, "Commit", commit)
	writeField(b, "Message", meta.Message)
	if meta.FileCount > 0 {
		writeField(b, "Files", strconv.Itoa(meta.FileCount))
		writeField(b, "Total lines", strconv.Itoa(meta.TotalLines))
	}
	if meta.Generated != "" {
		b.VerticalSpace(2 * lh)
		writeField(b, "Generated", meta.Generated)
	}

	return b.Finish()
}

// writeField 居中输出一行 "标签: 值"，标签加粗。值为空则跳过。
func writeField(b *layout.PageBuilder, label, value string) {
	if value == "" {
		return
	}
	b.WriteLine([]layout.Span{
		{Text: label + ": ", Variant: layout.FontBold, Size: coverLabelSize},
		{Text: value, Size: coverLabelSize},
	}, layout.AlignCenter)
}
