package extract

import (
	"strings"
	"unicode"
)

// QuestionItems 把编号列表拆成单条问题。
// 只接受以 "1." / "1)" 开头的行，缩进的续行并入上一条，其余文字丢弃；
// 没有编号行时返回空列表。
func QuestionItems(text string) []string {
	var items []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			items = append(items, s)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if body, ok := stripNumberedPrefix(trimmed); ok {
			flush()
			current.WriteString(body)
			continue
		}
		indented := line != strings.TrimLeft(line, " \t")
		if current.Len() == 0 || !indented {
			continue
		}
		current.WriteByte(' ')
		current.WriteString(trimmed)
	}
	flush()

	if items == nil {
		return []string{}
	}
	return items
}

// stripNumberedPrefix 去掉 "1. " 或 "1) " 前缀，按 rune 处理
func stripNumberedPrefix(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) < 3 || !unicode.IsDigit(runes[0]) {
		return s, false
	}

	for i, r := range runes {
		if r == '.' || r == ')' {
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				return strings.TrimSpace(string(runes[i+2:])), true
			}
			break
		}
		if !unicode.IsDigit(r) {
			break
		}
	}
	return s, false
}
