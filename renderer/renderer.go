// Package renderer 定义把组装好的文档序列化为最终文件的接口。
package renderer

import "github.com/ByLCY/gitprint/compose"

// Renderer 将组装结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(doc *compose.Document) ([]byte, error)
}
