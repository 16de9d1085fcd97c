package compose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ByLCY/gitprint/layout"
)

// testOptions 返回一个每页约可容纳 10 行正文的小版面，便于断言分页。
func testOptions() Options {
	return Options{
		Geometry: layout.Geometry{
			PageWidth:  400,
			PageHeight: 140,
			Margin:     20,
			LineHeight: 10,
		},
		FontSize:    8,
		LineNumbers: true,
		TOC:         true,
		Tree:        true,
	}
}

func makeFile(path string, lines ...string) File {
	return File{
		Path:      path,
		LineCount: len(lines),
		SizeLabel: "1.0 kB",
		Modified:  "2024-03-01",
		Lines: func(yield func(Line) bool) {
			for i, text := range lines {
				spans := []layout.Span{{Text: text, Size: 8}}
				if !yield(Line{Number: i + 1, Spans: spans}) {
					return
				}
			}
		},
	}
}

func repeatedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func testMeta() Metadata {
	return Metadata{
		Name:      "demo",
		Branch:    "main",
		ShortHash: "abc1234",
		Message:   "initial import",
	}
}

// pageByNumber 在文档中查找指定页码的页。
func pageByNumber(t *testing.T, doc *Document, n int) *layout.Page {
	t.Helper()
	for i := range doc.Pages {
		if doc.Pages[i].Number == n {
			return &doc.Pages[i]
		}
	}
	t.Fatalf("文档中不存在第 %d 页", n)
	return nil
}

func pageContains(p *layout.Page, text string) bool {
	for _, op := range p.Texts {
		if strings.Contains(op.Text, text) {
			return true
		}
	}
	return false
}

func TestAssemblePagesAreSequential(t *testing.T) {
	files := []File{
		makeFile("a/main.go", repeatedLines(25)...),
		makeFile("a/util.go", repeatedLines(3)...),
		makeFile("b/readme.md", repeatedLines(40)...),
	}
	doc := Assemble(testMeta(), files, nil, testOptions())

	if len(doc.Pages) == 0 {
		t.Fatal("组装结果不应为空")
	}
	for i, p := range doc.Pages {
		if p.Number != i+1 {
			t.Fatalf("第 %d 个页面页码为 %d，页码应从 1 连续递增", i, p.Number)
		}
		header := fmt.Sprintf("- %d -", p.Number)
		if len(p.Texts) == 0 || p.Texts[0].Text != header {
			t.Fatalf("第 %d 页页眉缺失或不为 %q", p.Number, header)
		}
	}
}

func TestTOCLinksPointAtFileStartPages(t *testing.T) {
	files := []File{
		makeFile("a/main.go", repeatedLines(25)...),
		makeFile("a/util.go", repeatedLines(3)...),
		makeFile("b/readme.md", repeatedLines(40)...),
	}
	doc := Assemble(testMeta(), files, nil, testOptions())

	var links []layout.LinkOp
	for _, p := range doc.Pages {
		if pageContains(&p, "Table of Contents") {
			links = append(links, p.Links...)
		}
	}
	if len(links) != len(files) {
		t.Fatalf("目录链接数为 %d，应与文件数 %d 相等", len(links), len(files))
	}
	for i, l := range links {
		if l.Link.Kind != layout.LinkPage {
			t.Fatalf("目录链接 %d 不是页内跳转", i)
		}
		target := pageByNumber(t, doc, l.Link.Page)
		if !pageContains(target, files[i].Path) {
			t.Fatalf("目录链接 %d 指向第 %d 页，但该页没有 %q 的标题",
				i, l.Link.Page, files[i].Path)
		}
	}
}

func TestDisabledSectionsDropFromArithmetic(t *testing.T) {
	opts := testOptions()
	opts.TOC = false
	opts.Tree = false
	files := []File{makeFile("main.go", repeatedLines(5)...)}
	doc := Assemble(testMeta(), files, nil, opts)

	for _, p := range doc.Pages {
		if pageContains(&p, "Table of Contents") || pageContains(&p, "File Tree") {
			t.Fatal("关闭的章节不应出现在文档中")
		}
	}
	// 封面之后第一页就是正文。
	last := doc.Pages[len(doc.Pages)-1]
	if !pageContains(&last, "main.go") {
		t.Fatal("正文应紧跟封面")
	}
	if last.Number != len(doc.Pages) {
		t.Fatalf("正文页码 %d 与页面序号 %d 不符", last.Number, len(doc.Pages))
	}
}

func TestEmptyRepositoryYieldsCoverOnly(t *testing.T) {
	doc := Assemble(testMeta(), nil, nil, testOptions())

	if len(doc.Pages) == 0 {
		t.Fatal("空仓库仍应产出封面")
	}
	if !pageContains(&doc.Pages[0], "demo") {
		t.Fatal("封面缺少仓库名")
	}
	for _, p := range doc.Pages {
		if pageContains(&p, "Table of Contents") || pageContains(&p, "File Tree") {
			t.Fatal("空仓库不应产出目录或文件树")
		}
	}
}

func TestCommitAppendixRendersAfterContent(t *testing.T) {
	files := []File{makeFile("main.go", repeatedLines(3)...)}
	commits := []Commit{{
		SHA:     "0123456789abcdef",
		Author:  "dev",
		Date:    "2024-03-02",
		Message: "fix pagination",
		URL:     "https://example.com/commit/0123456",
		Files: []CommitFile{{
			Path:      "main.go",
			Additions: 2,
			Deletions: 1,
			Patch:     "@@ -1,2 +1,3 @@\n-old\n+new\n+more",
		}},
	}}
	doc := Assemble(testMeta(), files, commits, testOptions())

	var appendix *layout.Page
	for i := range doc.Pages {
		if pageContains(&doc.Pages[i], "Commit History") {
			appendix = &doc.Pages[i]
		}
	}
	if appendix == nil {
		t.Fatal("缺少提交历史章节")
	}
	if !pageContains(appendix, "01234567") {
		t.Fatal("提交标题应包含短哈希")
	}
	found := false
	for _, l := range appendix.Links {
		if l.Link.Kind == layout.LinkURI && l.Link.URI == commits[0].URL {
			found = true
		}
	}
	if !found {
		t.Fatal("提交链接未生成 URI 标注")
	}
}

func TestCommitMessageWrapsAtWordBoundaries(t *testing.T) {
	opts := testOptions()
	msg := strings.TrimSpace(strings.Repeat("pagination ", 20))
	commits := []Commit{{
		SHA:     "0123456789abcdef",
		Date:    "2024-03-02",
		Message: msg,
	}}
	doc := Assemble(testMeta(), []File{makeFile("main.go", "x")}, commits, opts)

	budget := opts.Geometry.Columns(opts.FontSize)
	var parts []string
	for _, p := range doc.Pages {
		if !pageContains(&p, "Commit History") {
			continue
		}
		for _, op := range p.Texts {
			if !strings.Contains(op.Text, "pagination") {
				continue
			}
			if n := len([]rune(op.Text)); n > budget {
				t.Fatalf("提交信息行宽 %d 超出列预算 %d", n, budget)
			}
			parts = append(parts, op.Text)
		}
	}
	if len(parts) < 2 {
		t.Fatalf("超长提交信息应折行，实际只有 %d 行", len(parts))
	}
	if got := strings.Join(parts, " "); got != msg {
		t.Fatalf("折行后拼回 %q，应为原始信息 %q", got, msg)
	}
}
