package layout

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// 本文件实现 PageBuilder：自顶向下、逐行推进的页面布局状态机。
// 纵向游标 y 自内容区域顶部（上边距处）向下度量；所有写入前都会经过
// EnsureSpace，保证提交写入时 y 不会越过可用高度。

// charWidthRatio 是等宽字体的字符宽度估算系数（宽度 ≈ 字符数 × 字号 × 系数）。
// Courier 系字体的标准前进宽度即 0.6em；如果换用比例字体，
// 所有居中与两端对齐的计算都需要替换为真实的文本测量。
const charWidthRatio = 0.6

// 页码页眉的字号与基线位置（相对上边距）。
const (
	headerFontSize = 7.0
	headerRise     = 2.0
)

// Alignment 表示一行的水平对齐方式。
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// lineBounds 记录最近一次写入行的包围盒，供链接标注锚定。
type lineBounds struct {
	x, top, width, height float64
}

// PageBuilder 持有当前页草稿与纵向游标，负责断页判断与绘制指令生成。
// 单个实例内的写入必须串行；不同实例间不共享状态，可并存。
type PageBuilder struct {
	geom  Geometry
	pages []Page
	curr  *Page

	y            float64 // 距内容区域顶部的偏移
	pageNum      int     // 当前正在写的页的全文序号（1 起始）
	pendingBreak bool    // 翻页延迟到下一次写入时才真正建新页
	last         lineBounds
}

// NewBuilder 创建一个从 startPage 页开始计数的布局器。
// 首页同样是惰性建立的：没有任何写入时 Finish 返回零页。
func NewBuilder(geom Geometry, startPage int) *PageBuilder {
	if startPage < 1 {
		startPage = 1
	}
	return &PageBuilder{
		geom:         geom,
		pageNum:      startPage - 1,
		pendingBreak: true,
	}
}

// Geometry 返回构造时的页面几何。
func (b *PageBuilder) Geometry() Geometry { return b.geom }

// LineHeight 返回单行行高（pt）。
func (b *PageBuilder) LineHeight() float64 { return b.geom.LineHeight }

// CurrentPage 返回下一次写入将落在的页码。
// 翻页尚未物化时返回的是将要建立的那一页，调用方因此可以在
// 实际页面对象存在之前就记录“内容从第 N 页开始”。
func (b *PageBuilder) CurrentPage() int {
	if b.pendingBreak {
		return b.pageNum + 1
	}
	return b.pageNum
}

// PageBreak 请求翻页，但不立即建新页：延迟到下一次写入。
// 这保证了章节末尾的翻页请求不会在文档尾部留下空白页。
func (b *PageBuilder) PageBreak() {
	b.pendingBreak = true
}

// EnsureSpace 保证当前页剩余空间不少于 needed，不足则翻页。
// 所有消耗纵向空间的操作都必须先经过这里。
func (b *PageBuilder) EnsureSpace(needed float64) {
	if needed > b.geom.UsableHeight() {
		// 单次写入超过整页可用高度属于几何配置错误；
		// 降级为越界绘制而不是让整个文档失败。
		slog.Warn("布局请求超过整页可用高度",
			"needed", needed, "usable", b.geom.UsableHeight())
	}
	b.materializeIfPending()
	// 页顶写入永不再翻页：放不下也只能越界绘制，否则会产出空页。
	if b.y > 0 && b.y+needed > b.geom.UsableHeight() {
		b.pendingBreak = true
		b.materializeIfPending()
	}
}

// materializeIfPending 是翻页的唯一物化入口：关闭当前页、打开新页并
// 写入页码页眉。Idle 状态下调用是无操作。
func (b *PageBuilder) materializeIfPending() {
	if !b.pendingBreak {
		return
	}
	b.closeCurrent()
	b.pendingBreak = false
	b.pageNum++
	b.y = 0
	page := &Page{
		Number: b.pageNum,
		Width:  b.geom.PageWidth,
		Height: b.geom.PageHeight,
		Margin: b.geom.Margin,
	}
	header := fmt.Sprintf("- %d -", b.pageNum)
	page.Texts = append(page.Texts, TextOp{
		Text:    header,
		X:       (b.geom.PageWidth - spanWidth(header, headerFontSize)) / 2,
		Y:       b.geom.Margin - headerRise,
		Size:    headerFontSize,
		Variant: FontRegular,
		Color:   Color{R: 128, G: 128, B: 128},
	})
	b.curr = page
}

func (b *PageBuilder) closeCurrent() {
	if b.curr == nil {
		return
	}
	b.pages = append(b.pages, *b.curr)
	b.curr = nil
}

// WriteLine 在同一基线上依次绘制 spans 并把游标推进一个行高。
// 空 span 序列退化为纯粹的行推进，不产生指令。
func (b *PageBuilder) WriteLine(spans []Span, align Alignment) {
	b.EnsureSpace(b.geom.LineHeight)

	total := spansWidth(spans)
	x := b.geom.Margin
	if align == AlignCenter {
		x = (b.geom.PageWidth - total) / 2
		if x < 0 {
			x = 0
		}
	}
	b.emitSpans(spans, x)
	b.last = lineBounds{x: x, top: b.geom.Margin + b.y, width: total, height: b.geom.LineHeight}
	b.y += b.geom.LineHeight
}

// WriteJustified 在同一基线上绘制左右两组 spans：
// 左组从左边距开始，右组的起点由可用宽度减去其估算宽度得出，
// 因此无论内容长短右组都贴齐右边距。
func (b *PageBuilder) WriteJustified(left, right []Span) {
	b.EnsureSpace(b.geom.LineHeight)

	b.emitSpans(left, b.geom.Margin)
	rightX := b.geom.PageWidth - b.geom.Margin - spansWidth(right)
	if rightX < b.geom.Margin {
		rightX = b.geom.Margin
	}
	b.emitSpans(right, rightX)
	b.last = lineBounds{
		x:      b.geom.Margin,
		top:    b.geom.Margin + b.y,
		width:  b.geom.UsableWidth(),
		height: b.geom.LineHeight,
	}
	b.y += b.geom.LineHeight
}

// WriteCentered 绘制一行居中标题。标题行高取字号加 4pt，与正文行高无关。
func (b *PageBuilder) WriteCentered(span Span) {
	height := span.Size + 4
	b.EnsureSpace(height)

	width := spanWidth(span.Text, span.Size)
	x := (b.geom.PageWidth - width) / 2
	if x < 0 {
		x = 0
	}
	if span.Text != "" {
		b.curr.Texts = append(b.curr.Texts, TextOp{
			Text:    span.Text,
			X:       x,
			Y:       b.geom.Margin + b.y + height,
			Size:    span.Size,
			Variant: span.Variant,
			Color:   span.Color,
		})
	}
	b.last = lineBounds{x: x, top: b.geom.Margin + b.y, width: width, height: height}
	b.y += height
}

// VerticalSpace 向下推进游标而不绘制任何内容。
// 本身不触发翻页：是否翻页交由下一次写入的 EnsureSpace 判断；
// 翻页待物化时的空白请求直接丢弃，新页总是从内容顶部开始。
func (b *PageBuilder) VerticalSpace(amount float64) {
	if b.pendingBreak {
		return
	}
	b.y += amount
}

// AddLink 在最近一次写入行的包围盒上挂一个链接标注。
// height 可覆盖区域高度（传 0 使用该行自身高度）。
func (b *PageBuilder) AddLink(height float64, link Link) {
	if b.curr == nil {
		return
	}
	if height <= 0 {
		height = b.last.height
	}
	b.curr.Links = append(b.curr.Links, LinkOp{
		X:      b.last.x,
		Y:      b.last.top,
		Width:  b.last.width,
		Height: height,
		Link:   link,
	})
}

// Finish 关闭进行中的页并返回全部页面。自上次关页后没有任何绘制时
// 不会补出空页。Finish 之后不应再写入。
func (b *PageBuilder) Finish() []Page {
	b.closeCurrent()
	return b.pages
}

// emitSpans 在当前基线上自 x 起依次生成各 span 的绘制指令。
func (b *PageBuilder) emitSpans(spans []Span, x float64) {
	baseline := b.geom.Margin + b.y + b.geom.LineHeight
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		b.curr.Texts = append(b.curr.Texts, TextOp{
			Text:    s.Text,
			X:       x,
			Y:       baseline,
			Size:    s.Size,
			Variant: s.Variant,
			Color:   s.Color,
		})
		x += spanWidth(s.Text, s.Size)
	}
}

// spanWidth 按等宽假设估算文本宽度。
func spanWidth(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * charWidthRatio
}

func spansWidth(spans []Span) float64 {
	total := 0.0
	for _, s := range spans {
		total += spanWidth(s.Text, s.Size)
	}
	return total
}
