package extract

import (
	"regexp"
	"strconv"
)

var scorePattern = regexp.MustCompile(`Score:\s*(\d+)`)

// Score 查找反馈文本中第一个 "Score: <n>"。没有找到返回 nil，这不是错误。
// 这里不做范围检查。
func Score(feedback string) *int {
	m := scorePattern.FindStringSubmatch(feedback)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// 数字超出 int 范围
		return nil
	}
	return &n
}
