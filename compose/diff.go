package compose

import (
	"fmt"
	"strings"

	"github.com/ByLCY/gitprint/layout"
)

var (
	diffAddColor  = layout.Color{R: 0, G: 128, B: 0}
	diffDelColor  = layout.Color{R: 178, G: 34, B: 34}
	diffHunkColor = layout.Color{R: 70, G: 100, B: 140}
	linkColor     = layout.Color{R: 0, G: 0, B: 200}
)

// renderCommits 渲染提交历史附录，每条提交独占新页起始。
func renderCommits(b *layout.PageBuilder, commits []Commit, opts Options) {
	b.PageBreak()
	b.WriteCentered(layout.Span{
		Text:    "Commit History",
		Variant: layout.FontBold,
		Size:    sectionTitleSize,
	})
	b.VerticalSpace(opts.Geometry.LineHeight)

	for i, c := range commits {
		if i > 0 {
			b.PageBreak()
		}
		renderCommit(b, &c, opts)
	}
}

func renderCommit(b *layout.PageBuilder, c *Commit, opts Options) {
	lh := opts.Geometry.LineHeight

	sha := c.SHA
	if len(sha) > 8 {
		sha = sha[:8]
	}
	b.WriteLine([]layout.Span{
		{Text: sha, Variant: layout.FontBold, Size: opts.FontSize + 2},
		{Text: "  " + c.Date, Size: tocMetaSize, Color: tocMetaColor},
	}, layout.AlignLeft)
	if c.Author != "" {
		b.WriteLine([]layout.Span{
			{Text: c.Author, Size: opts.FontSize, Color: tocMetaColor},
		}, layout.AlignLeft)
	}
	msgBudget := opts.Geometry.Columns(opts.FontSize)
	for _, msg := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		for _, wrapped := range layout.WordWrap(msg, msgBudget) {
			b.WriteLine([]layout.Span{
				{Text: wrapped, Size: opts.FontSize},
			}, layout.AlignLeft)
		}
	}
	if c.URL != "" {
		b.WriteLine([]layout.Span{
			{Text: c.URL, Size: tocMetaSize, Color: linkColor},
		}, layout.AlignLeft)
		b.AddLink(0, layout.Link{Kind: layout.LinkURI, URI: c.URL})
	}
	b.VerticalSpace(lh / 2)

	budget := opts.Geometry.Columns(opts.FontSize)
	for _, f := range c.Files {
		renderCommitFile(b, &f, budget, opts)
		b.VerticalSpace(lh / 2)
	}
}

// renderCommitFile 渲染提交内单个文件的改动统计与补丁正文。
// 补丁为空时只输出统计行。
func renderCommitFile(b *layout.PageBuilder, f *CommitFile, budget int, opts Options) {
	b.WriteLine([]layout.Span{
		{Text: f.Path, Variant: layout.FontBold, Size: opts.FontSize},
		{Text: fmt.Sprintf("  +%d", f.Additions), Size: opts.FontSize, Color: diffAddColor},
		{Text: fmt.Sprintf(" -%d", f.Deletions), Size: opts.FontSize, Color: diffDelColor},
	}, layout.AlignLeft)

	if f.Patch == "" {
		b.WriteLine([]layout.Span{
			{Text: "(patch omitted)", Size: tocMetaSize, Color: tocMetaColor},
		}, layout.AlignLeft)
		return
	}
	for _, raw := range strings.Split(strings.TrimRight(f.Patch, "\n"), "\n") {
		color := layout.Color{}
		switch {
		case strings.HasPrefix(raw, "@@"):
			color = diffHunkColor
		case strings.HasPrefix(raw, "+"):
			color = diffAddColor
		case strings.HasPrefix(raw, "-"):
			color = diffDelColor
		}
		for _, chunk := range layout.HardWrap(raw, budget) {
			b.WriteLine([]layout.Span{
				{Text: chunk, Size: opts.FontSize, Color: color},
			}, layout.AlignLeft)
		}
	}
}
