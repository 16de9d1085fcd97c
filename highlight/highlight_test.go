package highlight

import (
	"strings"
	"testing"

	"github.com/ByLCY/gitprint/compose"
)

const goSample = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`

func collect(t *testing.T, seq func(func(compose.Line) bool)) []compose.Line {
	t.Helper()
	var lines []compose.Line
	for l := range seq {
		lines = append(lines, l)
	}
	return lines
}

func TestNewRejectsUnknownTheme(t *testing.T) {
	if _, err := New("definitely-not-a-theme", 8); err == nil {
		t.Fatal("未注册的配色方案应返回错误")
	}
	if _, err := New("monokai", 8); err != nil {
		t.Fatalf("内置配色方案不应报错: %v", err)
	}
}

func TestLinesRoundTripAndNumbering(t *testing.T) {
	h, err := New("monokai", 8)
	if err != nil {
		t.Fatal(err)
	}
	lines := collect(t, h.Lines("main.go", goSample))

	want := strings.Split(strings.TrimSuffix(goSample, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("行数为 %d，应为 %d", len(lines), len(want))
	}
	for i, l := range lines {
		if l.Number != i+1 {
			t.Fatalf("第 %d 行的行号为 %d，行号应连续", i, l.Number)
		}
		var joined strings.Builder
		for _, s := range l.Spans {
			joined.WriteString(s.Text)
		}
		if joined.String() != want[i] {
			t.Fatalf("第 %d 行拼接为 %q，应为 %q", i+1, joined.String(), want[i])
		}
	}
}

func TestLinesCarryStyling(t *testing.T) {
	h, err := New("monokai", 8)
	if err != nil {
		t.Fatal(err)
	}
	styled := false
	for _, l := range collect(t, h.Lines("main.go", goSample)) {
		for _, s := range l.Spans {
			if s.Color.R != 0 || s.Color.G != 0 || s.Color.B != 0 {
				styled = true
			}
		}
	}
	if !styled {
		t.Fatal("高亮结果中应至少有一个着色片段")
	}
}

func TestPlainLinesForUnknownContent(t *testing.T) {
	lines := collect(t, PlainLines("one\ntwo\n", 8))
	if len(lines) != 2 {
		t.Fatalf("行数为 %d，应为 2", len(lines))
	}
	if len(lines[0].Spans) != 1 || lines[0].Spans[0].Text != "one" {
		t.Fatalf("首行内容错误: %+v", lines[0].Spans)
	}
	if lines[0].Spans[0].Variant != 0 || lines[1].Number != 2 {
		t.Fatal("纯文本行不应携带样式，行号应连续")
	}
}

func TestThemesSortedAndNonEmpty(t *testing.T) {
	names := Themes()
	if len(names) == 0 {
		t.Fatal("内置配色方案列表不应为空")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("配色方案列表未排序: %q > %q", names[i-1], names[i])
		}
	}
}
