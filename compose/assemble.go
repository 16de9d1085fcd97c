package compose

import (
	"log/slog"

	"github.com/ByLCY/gitprint/layout"
)

// Assemble 执行四阶段组装，返回页码连续、引用一致的文档。
//
// 目录与文件树的页数只取决于条目数量和固定宽度的页码栏位，
// 与具体页码数值无关，所以试排和重排的页数必然一致；这里仍
// 记录一次校验，页数不符说明排版被改成了依赖页码内容。
func Assemble(meta Metadata, files []File, commits []Commit, opts Options) *Document {
	entries := make([]*tocEntry, len(files))
	for i := range files {
		entries[i] = &tocEntry{file: &files[i]}
	}

	// 阶段一：封面。
	coverPages := renderCover(meta, opts)
	c := len(coverPages)

	// 阶段二：占位试排，只取页数，页面丢弃。
	t, r := 0, 0
	if opts.TOC {
		t = len(renderTOC(entries, c+1, false, opts))
	}
	if opts.Tree {
		r = len(renderTree(entries, c+t+1, opts))
	}

	// 阶段三：正文，起始页号预留前三段的页数，
	// 逐文件回填真实起始页。
	contentPages := renderContent(entries, commits, c+t+r+1, opts)

	// 阶段四：用真实页码重排目录与文件树。
	var tocPages, treePages []layout.Page
	if opts.TOC {
		tocPages = renderTOC(entries, c+1, true, opts)
		if len(tocPages) != t {
			slog.Warn("目录重排页数与试排不符，页码会整体错位",
				"试排", t, "重排", len(tocPages))
		}
	}
	if opts.Tree {
		treePages = renderTree(entries, c+t+1, opts)
		if len(treePages) != r {
			slog.Warn("文件树重排页数与试排不符，页码会整体错位",
				"试排", r, "重排", len(treePages))
		}
	}

	pages := make([]layout.Page, 0, c+t+r+len(contentPages))
	pages = append(pages, coverPages...)
	pages = append(pages, tocPages...)
	pages = append(pages, treePages...)
	pages = append(pages, contentPages...)

	return &Document{Title: meta.Name, Pages: pages}
}

// renderContent 渲染全部文件正文与提交附录。
func renderContent(entries []*tocEntry, commits []Commit, startPage int, opts Options) []layout.Page {
	b := layout.NewBuilder(opts.Geometry, startPage)
	for _, e := range entries {
		e.startPage = b.CurrentPage()
		renderFile(b, e.file, opts)
		b.PageBreak()
	}
	if len(commits) > 0 {
		renderCommits(b, commits, opts)
	}
	return b.Finish()
}
