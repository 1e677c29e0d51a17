package model

import "fmt"

// OperationKind 生成/评分请求的类型
type OperationKind string

const (
	OpSubtopics      OperationKind = "subtopics"
	OpValidation     OperationKind = "validation"
	OpRefinement     OperationKind = "refinement"
	OpCategorization OperationKind = "categorization"
	OpQuestions      OperationKind = "questions"
	OpGrading        OperationKind = "grading"
)

var operationKinds = []OperationKind{
	OpSubtopics, OpValidation, OpRefinement, OpCategorization, OpQuestions, OpGrading,
}

// OperationKinds 返回全部操作类型，顺序固定
func OperationKinds() []OperationKind {
	out := make([]OperationKind, len(operationKinds))
	copy(out, operationKinds)
	return out
}

func ParseOperationKind(s string) (OperationKind, error) {
	for _, k := range operationKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown operation kind %q", s)
}

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)

// GenerationRequest 单次调用的输入，不落库
type GenerationRequest struct {
	Kind               OperationKind
	JobRole            string
	ExperienceLevel    string
	Subtopics          []string
	Subtopic           string
	ValidationFeedback string
	QuestionType       QuestionType
	Question           string
	Answer             string
}

// RawModelOutput 模型原始输出，只在流水线内部存在
type RawModelOutput struct {
	Kind OperationKind
	Text string
}

// Payload 按操作类型区分的结构化结果
type Payload interface {
	Kind() OperationKind
}

type SubtopicList struct {
	Subtopics []string `json:"subtopics"`
}

func (SubtopicList) Kind() OperationKind { return OpSubtopics }

type RefinedSubtopicList struct {
	RefinedSubtopics []string `json:"refined_subtopics"`
	Explanation      string   `json:"explanation"`
}

func (RefinedSubtopicList) Kind() OperationKind { return OpRefinement }

// CategoryMap 键固定在 CategoryNames 之内
type CategoryMap map[string][]string

func (CategoryMap) Kind() OperationKind { return OpCategorization }

// FeedbackText 自由文本结果，评分操作会附带可选分数
type FeedbackText struct {
	Op    OperationKind `json:"-"`
	Text  string        `json:"text"`
	Score *int          `json:"score,omitempty"`
}

func (f FeedbackText) Kind() OperationKind { return f.Op }

const (
	CategoryTechnicalSkills = "Technical Skills"
	CategorySoftSkills      = "Soft Skills"
	CategoryAdvancedTopics  = "Advanced Topics"
	CategoryGeneralSkills   = "General Skills"
)

var CategoryNames = []string{
	CategoryTechnicalSkills,
	CategorySoftSkills,
	CategoryAdvancedTopics,
	CategoryGeneralSkills,
}

const (
	MinScore = 0
	MaxScore = 10
)

// ScoreInRange 分数是否落在 0-10
func ScoreInRange(score int) bool {
	return score >= MinScore && score <= MaxScore
}
