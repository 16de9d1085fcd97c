package layout

// 该文件定义布局输出的数据模型：页面、绘制指令与链接标注，供布局计算、渲染与调试 JSON 共用。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// FontVariant 表示等宽字体的四个标准变体。
type FontVariant int

const (
	FontRegular FontVariant = iota
	FontBold
	FontItalic
	FontBoldItalic
)

// String 返回变体的简称（渲染后端用它选择字体样式）。
func (v FontVariant) String() string {
	switch v {
	case FontBold:
		return "B"
	case FontItalic:
		return "I"
	case FontBoldItalic:
		return "BI"
	default:
		return ""
	}
}

// Span 是一段共享同一字体/字号/颜色的文本。
// Span 为一次写入调用内的临时值：指令生成后不再被引用。
type Span struct {
	Text    string
	Variant FontVariant
	Size    float64 // pt
	Color   Color
}

// TextOp 表示一条排好坐标的文本绘制指令。
// X 为距页面左缘的水平位置，Y 为基线距页面顶部的距离（单位均为 pt）。
type TextOp struct {
	Text    string      `json:"text"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Size    float64     `json:"size"`
	Variant FontVariant `json:"variant"`
	Color   Color       `json:"color"`
}

// LinkKind 区分链接标注的目标类型。
type LinkKind int

const (
	LinkURI  LinkKind = iota // 外部 URI
	LinkPage                 // 文档内页码跳转
)

// Link 描述链接目标：外部 URI 或文档内的目标页（1 起始）。
type Link struct {
	Kind LinkKind `json:"kind"`
	URI  string   `json:"uri,omitempty"`
	Page int      `json:"page,omitempty"`
}

// LinkOp 表示锚定在某个矩形区域上的链接标注。
// 矩形以页面左上角为原点（X/Y 为左上角，单位 pt）。
type LinkOp struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Link   Link    `json:"link"`
}

// Page 记录一页的物理尺寸与最终可以直接渲染的指令列表。
// 页面在翻页时由 PageBuilder 关闭，关闭后不再被修改。
type Page struct {
	Number int      `json:"number"` // 1 起始的全文页码
	Width  float64  `json:"width"`  // pt
	Height float64  `json:"height"` // pt
	Margin float64  `json:"margin"` // pt，四边相同
	Texts  []TextOp `json:"texts"`
	Links  []LinkOp `json:"links,omitempty"`
}

// FlipY 把自页顶向下度量的纵坐标换算为左下角原点坐标，
// 供需要 PDF 原生坐标系的渲染后端使用。布局逻辑本身始终自顶向下。
func (p *Page) FlipY(topDown float64) float64 {
	return p.Height - topDown
}
