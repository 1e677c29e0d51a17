package prompt

import (
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"os"

	"gopkg.in/yaml.v3"
)

// Set 操作类型到模板的映射，构建后只读
type Set struct {
	templates map[model.OperationKind]*Template
}

// Defaults 返回内置模板集合
func Defaults() *Set {
	s := &Set{templates: make(map[model.OperationKind]*Template, len(defaultTemplates))}
	for kind, text := range defaultTemplates {
		s.templates[kind] = MustParse(text)
	}
	return s
}

// fileFormat prompts.yaml 的结构：
//
//	templates:
//	  subtopics: |
//	    Break down the role of a {job_role} ...
type fileFormat struct {
	Templates map[string]string `yaml:"templates"`
}

// LoadFile 在内置模板基础上应用 YAML 覆盖，path 为空时直接返回内置模板
func LoadFile(path string) (*Set, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file: %w", err)
	}
	return s.apply(data)
}

// LoadBytes 解析 YAML 内容，主要供测试使用
func LoadBytes(data []byte) (*Set, error) {
	return Defaults().apply(data)
}

func (s *Set) apply(data []byte) (*Set, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse prompt file: %w", err)
	}

	for name, text := range f.Templates {
		kind, err := model.ParseOperationKind(name)
		if err != nil {
			return nil, err
		}
		tpl, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		s.templates[kind] = tpl
	}
	return s, nil
}

// Template 返回某个操作类型的模板
func (s *Set) Template(kind model.OperationKind) (*Template, error) {
	t, ok := s.templates[kind]
	if !ok {
		return nil, util.NewPipelineError(util.ErrTemplateBinding, string(kind), "no template for operation", nil)
	}
	return t, nil
}

// Render 选择模板并绑定参数
func (s *Set) Render(kind model.OperationKind, params map[string]string) (string, error) {
	t, err := s.Template(kind)
	if err != nil {
		return "", err
	}
	return t.Bind(kind, params)
}
