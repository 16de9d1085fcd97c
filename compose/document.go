// Package compose 负责把仓库内容组装成带页码与交叉引用的完整文档。
//
// 组装分四个阶段进行：先渲染封面，再用占位页码试排目录与文件树
// 以确定它们各自占用的页数，然后在正确的起始页号上渲染正文并记录
// 每个文件的真实起始页，最后用真实页码重排目录与文件树。四段页面
// 按 封面、目录、文件树、正文 的顺序拼接，页码连续。
package compose

import (
	"iter"

	"github.com/ByLCY/gitprint/layout"
)

// Line 是正文中的一行，Spans 已带好高亮样式。
type Line struct {
	Number int
	Spans  []layout.Span
}

// File 描述仓库中一个待渲染的文件。LineCount、Size、Modified
// 在组装前算好，目录条目直接引用；Lines 只在正文阶段消费一次。
type File struct {
	Path      string
	LineCount int
	SizeLabel string
	Modified  string
	Lines     iter.Seq[Line]
}

// Metadata 是封面与页眉用到的仓库信息。
type Metadata struct {
	Name       string
	Branch     string
	ShortHash  string
	CommitDate string
	Message    string
	FileCount  int
	TotalLines int
	Generated  string
}

// Commit 是附录中一条提交记录。
type Commit struct {
	SHA     string
	Author  string
	Date    string
	Message string
	URL     string
	Files   []CommitFile
}

// CommitFile 是提交中被改动的一个文件。Patch 为空表示补丁
// 过大或为二进制，只渲染增删统计。
type CommitFile struct {
	Path      string
	Additions int
	Deletions int
	Patch     string
}

// tocEntry 在正文阶段回填 startPage，之后目录据此排版并加链接。
type tocEntry struct {
	file      *File
	startPage int
}

// Options 控制组装行为。
type Options struct {
	Geometry    layout.Geometry
	FontSize    float64
	LineNumbers bool
	TOC         bool
	Tree        bool
}

// Document 是组装结果，交给渲染后端序列化。
type Document struct {
	Title string
	Pages []layout.Page
}
