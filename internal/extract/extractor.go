// Package extract 从模型的自由文本中取出结构化片段并校验其形状。
//
// 模型经常在 JSON 前后附带解释性文字，所以提取策略按操作类型区分：
// 扁平列表取最短的花括号片段，带单个列表的结果截止到可能闭合该列表的第一个 ']'，
// 键名未知的分类结果取最外层的花括号片段。
package extract

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"regexp"
	"strings"
	"sync"
)

// Policy 片段定位策略
type Policy int

const (
	// PolicyFlat 单键、无嵌套的扁平列表
	PolicyFlat Policy = iota
	// PolicyBoundedList 已知键、内含一个列表
	PolicyBoundedList
	// PolicyOutermost 键未知、可能有多个嵌套列表
	PolicyOutermost
)

func (p Policy) String() string {
	switch p {
	case PolicyFlat:
		return "flat"
	case PolicyBoundedList:
		return "bounded_list"
	case PolicyOutermost:
		return "outermost"
	default:
		return "unknown"
	}
}

// Rule 某个操作类型的提取规则
type Rule struct {
	Policy Policy
	Key    string
}

var rules = map[model.OperationKind]Rule{
	model.OpSubtopics:      {Policy: PolicyFlat, Key: "subtopics"},
	model.OpRefinement:     {Policy: PolicyBoundedList, Key: "refined_subtopics"},
	model.OpCategorization: {Policy: PolicyOutermost},
}

// RuleFor 返回操作类型对应的规则；自由文本类操作没有规则
func RuleFor(kind model.OperationKind) (Rule, bool) {
	r, ok := rules[kind]
	return r, ok
}

var (
	flatSpan      = regexp.MustCompile(`\{[^{}]*\}`)
	outermostSpan = regexp.MustCompile(`(?s)\{.*\}`)
)

const previewLen = 120

// Extract 按操作类型的规则定位结构化片段
func Extract(kind model.OperationKind, text string) (string, error) {
	rule, ok := RuleFor(kind)
	if !ok {
		return "", util.NewPipelineError(util.ErrExtraction, string(kind),
			"operation does not produce structured output", nil)
	}
	return ExtractWith(rule, kind, text)
}

// ExtractWith 使用指定规则定位片段。没有任何花括号片段时返回 ErrExtraction；
// 找到花括号但不符合键的规则时退回最外层片段，由校验阶段报告形状错误。
func ExtractWith(rule Rule, kind model.OperationKind, text string) (string, error) {
	var fragment string
	switch rule.Policy {
	case PolicyFlat:
		fragment = shortestWithKey(text, rule.Key)
	case PolicyBoundedList:
		fragment = boundedList(text, rule.Key)
	}

	if fragment == "" {
		fragment = outermostSpan.FindString(text)
	}

	if fragment == "" {
		return "", util.NewPipelineError(util.ErrExtraction, string(kind),
			"no structured fragment located in model output (got: "+preview(text)+")", nil)
	}
	return fragment, nil
}

// shortestWithKey 取第一个包含 key 的无嵌套花括号片段，都不包含时返回空串，
// 由调用方退回最外层片段
func shortestWithKey(text, key string) string {
	spans := flatSpan.FindAllString(text, -1)
	if len(spans) == 0 {
		return ""
	}
	if key == "" {
		return spans[0]
	}
	quoted := `"` + key + `"`
	for _, s := range spans {
		if strings.Contains(s, quoted) {
			return s
		}
	}
	return ""
}

// boundedCache key -> *regexp.Regexp
var boundedCache sync.Map

func boundedPattern(key string) *regexp.Regexp {
	if re, ok := boundedCache.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?s)\{[^{}]*"` + regexp.QuoteMeta(key) + `"\s*:\s*\[.*?\]\s*\}`)
	actual, _ := boundedCache.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}

func init() {
	for _, r := range rules {
		if r.Policy == PolicyBoundedList {
			boundedPattern(r.Key)
		}
	}
}

// boundedList 从 key 之前最近的 '{' 开始，到第一个后面紧跟 '}' 的 ']' 为止
func boundedList(text, key string) string {
	return boundedPattern(key).FindString(text)
}

func preview(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return "empty output"
	}
	r := []rune(t)
	if len(r) > previewLen {
		return string(r[:previewLen]) + "..."
	}
	return t
}
