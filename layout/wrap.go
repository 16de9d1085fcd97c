package layout

import "strings"

// 纯函数的折行工具：不依赖 PageBuilder 的页面状态，
// 相同输入总是得到相同输出。宽度一律按字符数（rune）计。

// HardWrap 按固定字符数切分文本，不考虑词边界。
// 适用于文件路径等宁可截断标识符也要保证宽度可预测的场景。
// 空输入或 maxChars 为 0 时原样返回单块。
func HardWrap(text string, maxChars int) []string {
	if text == "" || maxChars <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// WordWrap 按空白分词贪心折行：放不下下一个词时另起一行。
// 单个超长词独占一行而不拆分，因此不会产生零长度行。
func WordWrap(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var current strings.Builder
	currentLen := 0
	for _, word := range words {
		wordLen := len([]rune(word))
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = wordLen
		case currentLen+1+wordLen <= maxChars:
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = wordLen
		}
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
