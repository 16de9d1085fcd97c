// Package theme 解析自定义配色主题文件并生成 chroma 配色方案。
//
// 主题文件是一个小 DSL：
//
//	theme "paper-light" {
//	    background: #ffffff
//	    text:       #202020
//	    keyword:    bold #00007f
//	    string:     #007700
//	    comment:    italic #888888
//	}
//
// 类别名对应高亮词法单元的大类，未声明的类别继承 text 的颜色。
package theme

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	themeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 交替分支先试 6 位：Go 正则取最左优先,3 位在前会把
		// #202020 截成 #202。
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[{}:]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(themeLexer),
		participle.Elide("Whitespace", "LineComment"),
		participle.Unquote("String"),
	)
)

// File is the root AST node for a theme file.
type File struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"Newline* 'theme' @String"`
	Rules []*Rule        `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Rule assigns style attributes to one token class.
type Rule struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Class string         `parser:"@Ident ':'"`
	Attrs []string       `parser:"( @('bold'|'italic') | @Color )+"`
}

// classTokens 把类别名映射到 chroma 的词法单元大类。
var classTokens = map[string]chroma.TokenType{
	"text":        chroma.Text,
	"background":  chroma.Background,
	"keyword":     chroma.Keyword,
	"string":      chroma.LiteralString,
	"number":      chroma.LiteralNumber,
	"comment":     chroma.Comment,
	"name":        chroma.Name,
	"function":    chroma.NameFunction,
	"type":        chroma.KeywordType,
	"constant":    chroma.NameConstant,
	"operator":    chroma.Operator,
	"punctuation": chroma.Punctuation,
}

// Parse 从 r 读取并解析一个主题文件。
func Parse(name string, r io.Reader) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取主题文件: %w", err)
	}
	f, err := fileParser.ParseBytes(name, src)
	if err != nil {
		return nil, fmt.Errorf("解析主题文件 %s: %w", name, err)
	}
	return f, nil
}

// Load 解析磁盘上的主题文件并编译为 chroma 配色方案。
func Load(path string) (*chroma.Style, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开主题文件: %w", err)
	}
	defer fh.Close()

	f, err := Parse(path, fh)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Build 把 AST 编译成 chroma 配色方案。未知类别与重复类别都
// 视为主题文件的错误，带位置信息报告。
func (f *File) Build() (*chroma.Style, error) {
	entries := chroma.StyleEntries{}
	seen := map[string]lexer.Position{}
	for _, rule := range f.Rules {
		token, ok := classTokens[rule.Class]
		if !ok {
			return nil, fmt.Errorf("%s: 未知的类别 %q", rule.Pos, rule.Class)
		}
		if prev, dup := seen[rule.Class]; dup {
			return nil, fmt.Errorf("%s: 类别 %q 已在 %s 声明过", rule.Pos, rule.Class, prev)
		}
		seen[rule.Class] = rule.Pos

		entry, err := rule.entry()
		if err != nil {
			return nil, err
		}
		if token == chroma.Background {
			entry = "bg:" + entry
		}
		entries[token] = entry
	}

	style, err := chroma.NewStyle(f.Name, entries)
	if err != nil {
		return nil, fmt.Errorf("编译主题 %q: %w", f.Name, err)
	}
	return style, nil
}

// entry 把一条规则的属性列表拼成 chroma 的样式描述串。
func (r *Rule) entry() (string, error) {
	var parts []string
	colorSeen := false
	for _, attr := range r.Attrs {
		if strings.HasPrefix(attr, "#") {
			if colorSeen {
				return "", fmt.Errorf("%s: 类别 %q 声明了多个颜色", r.Pos, r.Class)
			}
			colorSeen = true
		}
		parts = append(parts, attr)
	}
	return strings.Join(parts, " "), nil
}
