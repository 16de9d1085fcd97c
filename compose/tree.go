package compose

import (
	"sort"
	"strings"

	"github.com/ByLCY/gitprint/layout"
)

const treeFontSize = 8.0

// treeNode 是文件树的一个节点。children 为空表示文件。
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool { return len(n.children) > 0 }

// child 返回（必要时创建）指定名字的子节点。
func (n *treeNode) child(name string) *treeNode {
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name, children: map[string]*treeNode{}}
		n.children[name] = c
	}
	return c
}

// renderTree 渲染文件树章节。树的形状只取决于路径集合，
// 与正文页码无关，试排与重排产出相同的页数。
func renderTree(entries []*tocEntry, startPage int, opts Options) []layout.Page {
	b := layout.NewBuilder(opts.Geometry, startPage)
	if len(entries) == 0 {
		return b.Finish()
	}

	root := &treeNode{children: map[string]*treeNode{}}
	for _, e := range entries {
		node := root
		for _, part := range strings.Split(e.file.Path, "/") {
			if part == "" {
				continue
			}
			node = node.child(part)
		}
	}

	b.WriteCentered(layout.Span{
		Text:    "File Tree",
		Variant: layout.FontBold,
		Size:    sectionTitleSize,
	})
	b.VerticalSpace(opts.Geometry.LineHeight)

	writeChildren(b, root, "")
	return b.Finish()
}

// writeChildren 按 目录在前、字典序 输出 node 的子节点及其子树。
func writeChildren(b *layout.PageBuilder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, z := node.children[names[i]], node.children[names[j]]
		if a.isDir() != z.isDir() {
			return a.isDir()
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		child := node.children[name]
		connector, descent := "├── ", "│   "
		if i == len(names)-1 {
			connector, descent = "└── ", "    "
		}

		variant := layout.FontRegular
		label := name
		if child.isDir() {
			variant = layout.FontBold
			label += "/"
		}
		b.WriteLine([]layout.Span{
			{Text: prefix + connector, Size: treeFontSize, Color: tocMetaColor},
			{Text: label, Size: treeFontSize, Variant: variant},
		}, layout.AlignLeft)

		if child.isDir() {
			writeChildren(b, child, prefix+descent)
		}
	}
}
