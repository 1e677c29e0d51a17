// Package prompt 管理各操作类型的提示词模板及变量绑定。
package prompt

import (
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"sort"
	"strings"
)

// Template 使用 {name} 占位符，字面量花括号写作 {{ 和 }}
type Template struct {
	text         string
	placeholders []string
}

// Parse 解析模板并收集占位符，模板本身不合法时返回错误
func Parse(text string) (*Template, error) {
	var names []string
	seen := map[string]bool{}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			name := text[i+1 : i+1+end]
			if !validName(name) {
				return nil, fmt.Errorf("invalid placeholder %q at offset %d", name, i)
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				i++
				continue
			}
			return nil, fmt.Errorf("single '}' at offset %d", i)
		}
	}

	return &Template{text: text, placeholders: names}, nil
}

// MustParse 用于内置模板
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders 按出现顺序返回占位符名
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

func (t *Template) Text() string {
	return t.text
}

// Bind 填充所有占位符。缺失或为空白的值返回 ErrTemplateBinding。
func (t *Template) Bind(kind model.OperationKind, params map[string]string) (string, error) {
	var missing []string
	for _, name := range t.placeholders {
		if strings.TrimSpace(params[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", util.NewPipelineError(util.ErrTemplateBinding, string(kind),
			"missing value for "+strings.Join(missing, ", "), nil)
	}

	var b strings.Builder
	b.Grow(len(t.text))
	text := t.text
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(text[i+1:], '}')
			b.WriteString(params[text[i+1:i+1+end]])
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
