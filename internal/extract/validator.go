package extract

import (
	"encoding/json"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"sort"
	"strconv"
	"strings"
)

const invalidFormat = "invalid response format"

// Validate 将片段解析为对应操作类型的 Payload。raw 为模型原始文本，仅细化结果会带上。
func Validate(kind model.OperationKind, fragment, raw string) (model.Payload, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(fragment), &parsed); err != nil {
		return nil, schemaError(kind, "fragment is not well-formed JSON", err)
	}

	switch kind {
	case model.OpSubtopics:
		list, err := stringListField(kind, parsed, "subtopics")
		if err != nil {
			return nil, err
		}
		return model.SubtopicList{Subtopics: list}, nil
	case model.OpRefinement:
		list, err := stringListField(kind, parsed, "refined_subtopics")
		if err != nil {
			return nil, err
		}
		return model.RefinedSubtopicList{RefinedSubtopics: list, Explanation: raw}, nil
	case model.OpCategorization:
		return categoryMap(kind, parsed)
	default:
		return nil, schemaError(kind, "operation has no structured shape", nil)
	}
}

// ExtractAndValidate 提取加校验的组合
func ExtractAndValidate(kind model.OperationKind, raw string) (model.Payload, error) {
	fragment, err := Extract(kind, raw)
	if err != nil {
		return nil, err
	}
	return Validate(kind, fragment, raw)
}

func stringListField(kind model.OperationKind, parsed interface{}, key string) ([]string, error) {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, schemaError(kind, fmt.Sprintf("expected a JSON object with a %q key", key), nil)
	}
	value, ok := obj[key]
	if !ok {
		return nil, schemaError(kind, fmt.Sprintf("missing %q key", key), nil)
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil, schemaError(kind, fmt.Sprintf("%q must be a list of strings", key), nil)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, schemaError(kind, fmt.Sprintf("%q[%d] is not a string", key, i), nil)
		}
		out = append(out, s)
	}
	return out, nil
}

func categoryMap(kind model.OperationKind, parsed interface{}) (model.CategoryMap, error) {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, schemaError(kind, "expected a dictionary of categories", nil)
	}

	out := make(model.CategoryMap, len(obj))
	// 先按固定顺序遍历，保证重复键合并结果稳定
	for _, key := range sortedKeys(obj) {
		name, ok := CanonicalCategory(key)
		if !ok {
			return nil, schemaError(kind, fmt.Sprintf("unknown category %q", key), nil)
		}
		values, err := normalizeCategoryValue(kind, key, obj[key])
		if err != nil {
			return nil, err
		}
		if existing, dup := out[name]; dup {
			out[name] = append(existing, values...)
			continue
		}
		out[name] = values
	}
	return out, nil
}

// normalizeCategoryValue 标量转为单元素列表，空值或假值转为空列表
func normalizeCategoryValue(kind model.OperationKind, key string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, schemaError(kind, fmt.Sprintf("%q[%d] is not a string", key, i), nil)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if v == "" {
			return []string{}, nil
		}
		return []string{v}, nil
	case bool:
		if !v {
			return []string{}, nil
		}
		return []string{strconv.FormatBool(v)}, nil
	case float64:
		if v == 0 {
			return []string{}, nil
		}
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, nil
	default:
		return nil, schemaError(kind, fmt.Sprintf("%q must be a list or a scalar", key), nil)
	}
}

// CanonicalCategory 忽略大小写和首尾空白匹配固定分类名
func CanonicalCategory(key string) (string, bool) {
	k := strings.TrimSpace(key)
	for _, name := range model.CategoryNames {
		if strings.EqualFold(k, name) {
			return name, true
		}
	}
	return "", false
}

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func schemaError(kind model.OperationKind, detail string, wrapped error) error {
	return util.NewPipelineError(util.ErrSchema, string(kind), invalidFormat+": "+detail, wrapped)
}
