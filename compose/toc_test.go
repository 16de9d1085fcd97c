package compose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ByLCY/gitprint/layout"
)

func tocEntries(n int) []*tocEntry {
	entries := make([]*tocEntry, n)
	for i := range entries {
		f := makeFile(fmt.Sprintf("pkg/file%02d.go", i), repeatedLines(i+1)...)
		// 页码位数从 1 位到 4 位都出现，试排与重排的行宽不得因此不同。
		entries[i] = &tocEntry{file: &f, startPage: 1 + i*200}
	}
	return entries
}

func TestTOCSamePageCountDummyAndReal(t *testing.T) {
	opts := testOptions()
	entries := tocEntries(50)

	dummy := renderTOC(entries, 2, false, opts)
	resolved := renderTOC(entries, 2, true, opts)

	if len(dummy) != len(resolved) {
		t.Fatalf("试排 %d 页、重排 %d 页，目录页数必须与页码数值无关",
			len(dummy), len(resolved))
	}
	if dummy[0].Number != 2 || resolved[0].Number != 2 {
		t.Fatalf("目录应从指定的第 2 页开始，实际 %d 与 %d",
			dummy[0].Number, resolved[0].Number)
	}
}

func TestTOCPageNumbersFlushRight(t *testing.T) {
	opts := testOptions()
	entries := tocEntries(12)
	pages := renderTOC(entries, 1, true, opts)

	want := opts.Geometry.PageWidth - opts.Geometry.Margin - 4*tocPathSize*0.6
	seen := 0
	for _, p := range pages {
		for _, op := range p.Texts {
			if isPageField(op.Text) {
				if diff := op.X - want; diff > 1e-9 || diff < -1e-9 {
					t.Fatalf("页码栏位 %q 的 X=%v，固定栏位应始终落在 %v",
						op.Text, op.X, want)
				}
				seen++
			}
		}
	}
	if seen != len(entries) {
		t.Fatalf("找到 %d 个页码栏位，应为 %d 个", seen, len(entries))
	}
}

// isPageField 判断文本是否是 4 位定宽页码栏位。
func isPageField(s string) bool {
	if len(s) != 4 {
		return false
	}
	trimmed := strings.TrimLeft(s, " ")
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func TestTOCDummyPassHasNoLinks(t *testing.T) {
	opts := testOptions()
	entries := tocEntries(5)

	for _, p := range renderTOC(entries, 1, false, opts) {
		if len(p.Links) != 0 {
			t.Fatal("试排不应生成链接标注")
		}
	}
}

func TestTOCLongPathWrapsBeforePageField(t *testing.T) {
	opts := testOptions()
	long := strings.Repeat("deep/", 30) + "leaf.go"
	f := makeFile(long, "x")
	entries := []*tocEntry{{file: &f, startPage: 7}}

	pages := renderTOC(entries, 1, true, opts)
	if len(pages) == 0 {
		t.Fatal("目录不应为空")
	}
	var rows int
	for _, op := range pages[0].Texts {
		if strings.Contains(long, op.Text) && op.Text != "" {
			rows++
		}
	}
	if rows < 2 {
		t.Fatalf("超长路径应折成多行，实际只有 %d 行", rows)
	}
	budget := opts.Geometry.Columns(tocPathSize) - tocReserveCols
	for _, chunk := range layout.HardWrap(long, budget) {
		found := false
		for _, op := range pages[0].Texts {
			if op.Text == chunk {
				found = true
			}
		}
		if !found {
			t.Fatalf("折行片段 %q 未出现在目录页上", chunk)
		}
	}
}

func TestTreeGroupsDirectoriesFirst(t *testing.T) {
	opts := testOptions()
	paths := []string{"zz.go", "aa/inner.go", "aa/other.go", "mm.go"}
	entries := make([]*tocEntry, len(paths))
	for i, p := range paths {
		f := makeFile(p, "x")
		entries[i] = &tocEntry{file: &f}
	}

	pages := renderTree(entries, 1, opts)
	if len(pages) != 1 {
		t.Fatalf("小树应排进 1 页，实际 %d 页", len(pages))
	}

	var labels []string
	for _, op := range pages[0].Texts {
		if strings.HasSuffix(op.Text, "/") || strings.HasSuffix(op.Text, ".go") {
			labels = append(labels, op.Text)
		}
	}
	want := []string{"aa/", "inner.go", "other.go", "mm.go", "zz.go"}
	if len(labels) != len(want) {
		t.Fatalf("树节点数为 %d，应为 %d", len(labels), len(want))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("第 %d 个节点为 %q，应为 %q（目录在前、字典序）",
				i, labels[i], want[i])
		}
	}
}

func TestTreeConnectorsMarkLastSibling(t *testing.T) {
	opts := testOptions()
	paths := []string{"a.go", "b.go"}
	entries := make([]*tocEntry, len(paths))
	for i, p := range paths {
		f := makeFile(p, "x")
		entries[i] = &tocEntry{file: &f}
	}

	pages := renderTree(entries, 1, opts)
	var connectors []string
	for _, op := range pages[0].Texts {
		if strings.Contains(op.Text, "──") {
			connectors = append(connectors, op.Text)
		}
	}
	if len(connectors) != 2 {
		t.Fatalf("应有 2 个连接符，实际 %d 个", len(connectors))
	}
	if connectors[0] != "├── " || connectors[1] != "└── " {
		t.Fatalf("连接符应为 ├── 与 └──，实际 %q %q",
			connectors[0], connectors[1])
	}
}
