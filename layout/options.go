package layout

import (
	"fmt"
	"strings"
)

// Geometry 配置排版所需的页面参数，均以 pt 为单位，构造后不再变化。
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64 // 四边相同
	LineHeight float64
}

// UsableHeight 返回去掉上下边距后的可用排版高度。
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - 2*g.Margin
}

// UsableWidth 返回去掉左右边距后的可用排版宽度。
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// Columns 返回可用宽度内按等宽估算能容纳的字符数，
// 供折行工具把宽度约束换算成字符数约束。
func (g Geometry) Columns(fontSize float64) int {
	if fontSize <= 0 {
		return 0
	}
	return int(g.UsableWidth() / (fontSize * charWidthRatio))
}

// 纸张预设，单位毫米。
var paperPresets = map[string][2]float64{
	"A4":     {210, 297},
	"Letter": {215.9, 279.4},
	"Legal":  {215.9, 355.6},
}

const defaultMarginMm = 10.0

// PaperGeometry 根据纸张名称与方向生成页面几何，名称大小写不敏感。
// 行高取字号加 2pt，与等宽代码排版的惯例一致。
func PaperGeometry(paper string, landscape bool, fontSize float64) (Geometry, error) {
	dims, ok := paperPresets[paper]
	if !ok {
		for name, d := range paperPresets {
			if strings.EqualFold(name, paper) {
				dims, ok = d, true
				break
			}
		}
	}
	if !ok {
		return Geometry{}, fmt.Errorf("暂不支持的纸张尺寸：%s", paper)
	}
	w, h := MmToPoints(dims[0]), MmToPoints(dims[1])
	if landscape {
		w, h = h, w
	}
	return Geometry{
		PageWidth:  w,
		PageHeight: h,
		Margin:     MmToPoints(defaultMarginMm),
		LineHeight: fontSize + 2,
	}, nil
}

// PaperSizes 返回全部可用纸张名称（字典序）。
func PaperSizes() []string {
	return []string{"A4", "Legal", "Letter"}
}
