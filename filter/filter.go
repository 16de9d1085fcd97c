// Package filter 按 glob 模式筛选要打印的文件，并识别不适合
// 排版的内容（二进制、压缩产物）。
package filter

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter 持有编译好的包含与排除模式。排除永远优先于包含；
// 默认排除集（锁文件、构建产物、二进制扩展名）始终生效。
type Filter struct {
	includes []string
	excludes []string
}

// New 校验全部模式并构造过滤器。includes 为空表示全部放行
// （仍受排除模式约束）。
func New(includes, excludes []string) (*Filter, error) {
	for _, p := range append(append([]string{}, includes...), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("非法的 glob 模式 %q", p)
		}
	}
	all := make([]string, 0, len(defaultExcludes)+len(excludes))
	all = append(all, defaultExcludes...)
	all = append(all, excludes...)
	return &Filter{includes: includes, excludes: all}, nil
}

// ShouldInclude 判断路径是否应被打印。
func (f *Filter) ShouldInclude(p string) bool {
	if matchAny(f.excludes, p) {
		return false
	}
	if len(f.includes) == 0 {
		return true
	}
	return matchAny(f.includes, p)
}

// matchAny 对完整路径与文件名分别尝试匹配，
// 使 "*.go" 这类模式同样命中子目录内的文件。
func matchAny(patterns []string, p string) bool {
	base := path.Base(p)
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, p); ok {
			return true
		}
		if !strings.Contains(pat, "/") {
			if ok, _ := doublestar.Match(pat, base); ok {
				return true
			}
		}
	}
	return false
}

// IsBinary 通过空字节与非法 UTF-8 比例判断内容是否为二进制。
// 只检查开头的一段，空内容视为文本。
func IsBinary(content []byte) bool {
	const probe = 8000
	if len(content) > probe {
		content = content[:probe]
	}
	invalid := 0
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if r == 0 {
			return true
		}
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		content = content[size:]
	}
	return invalid > 32
}

// IsMinified 判断内容是否像压缩过的 JS/CSS：
// 前 5 行里出现超过 500 字符的行。
func IsMinified(content string) bool {
	lines := strings.SplitN(content, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		if len(line) > 500 {
			return true
		}
	}
	return false
}
