package service

import (
	"context"
	"errors"
	"fmt"
	"interview_prep_backend/internal/extract"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

// Invoker 绑定模板并调用模型
type Invoker interface {
	Invoke(ctx context.Context, kind model.OperationKind, params map[string]string) (model.RawModelOutput, error)
}

// GradedStore 写入一次评分交互
type GradedStore interface {
	SaveGradedInteraction(ctx context.Context, resp *model.QuestionResponse, interest *model.UserJobInterest) error
}

type InterviewService struct {
	Invoker Invoker
	Store   GradedStore
}

func NewInterviewService(invoker Invoker, store GradedStore) *InterviewService {
	return &InterviewService{Invoker: invoker, Store: store}
}

// QuestionSet 模型生成的题目原文及解析出的编号条目
type QuestionSet struct {
	Questions string   `json:"questions"`
	Items     []string `json:"items"`
}

type CheckResponseInput struct {
	Question string
	Answer   string
	UserID   *uint
	JobRole  string
	Subtopic string
}

type GradingResult struct {
	Feedback string `json:"feedback"`
	Score    *int   `json:"score"`
	Stored   bool   `json:"stored"`
}

// Run 执行一次完整流水线：调用模型，结构化类型再经过提取和校验
func (s *InterviewService) Run(ctx context.Context, req model.GenerationRequest) (model.Payload, error) {
	raw, err := s.Invoker.Invoke(ctx, req.Kind, templateParams(req))
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case model.OpSubtopics, model.OpRefinement, model.OpCategorization:
		payload, err := extract.ExtractAndValidate(raw.Kind, raw.Text)
		if err != nil {
			stage := "schema"
			if errors.Is(err, util.ErrExtraction) {
				stage = "extraction"
			}
			monitoring.PipelineFailures.WithLabelValues(string(req.Kind), stage).Inc()
			return nil, err
		}
		return payload, nil
	case model.OpGrading:
		return model.FeedbackText{Op: raw.Kind, Text: raw.Text, Score: extract.Score(raw.Text)}, nil
	default:
		return model.FeedbackText{Op: raw.Kind, Text: raw.Text}, nil
	}
}

func templateParams(req model.GenerationRequest) map[string]string {
	subtopics := strings.Join(req.Subtopics, ", ")
	switch req.Kind {
	case model.OpSubtopics:
		return map[string]string{"job_role": req.JobRole, "experience_level": req.ExperienceLevel}
	case model.OpValidation:
		return map[string]string{"job_role": req.JobRole, "subtopics": subtopics}
	case model.OpRefinement:
		return map[string]string{"feedback": req.ValidationFeedback, "job_role": req.JobRole, "subtopics": subtopics}
	case model.OpCategorization:
		return map[string]string{"subtopics": subtopics}
	case model.OpQuestions:
		return map[string]string{
			"question_type":    string(req.QuestionType),
			"experience_level": req.ExperienceLevel,
			"job_role":         req.JobRole,
			"subtopic":         req.Subtopic,
		}
	case model.OpGrading:
		return map[string]string{"question": req.Question, "answer": req.Answer}
	}
	return nil
}

func (s *InterviewService) GenerateSubtopics(ctx context.Context, jobRole, experienceLevel string) (model.SubtopicList, error) {
	p, err := s.Run(ctx, model.GenerationRequest{Kind: model.OpSubtopics, JobRole: jobRole, ExperienceLevel: experienceLevel})
	if err != nil {
		return model.SubtopicList{}, err
	}
	list, ok := p.(model.SubtopicList)
	if !ok {
		return model.SubtopicList{}, payloadMismatch(model.OpSubtopics, p)
	}
	return list, nil
}

func (s *InterviewService) ValidateSubtopics(ctx context.Context, subtopics []string, jobRole string) (string, error) {
	p, err := s.Run(ctx, model.GenerationRequest{Kind: model.OpValidation, JobRole: jobRole, Subtopics: subtopics})
	if err != nil {
		return "", err
	}
	return p.(model.FeedbackText).Text, nil
}

func (s *InterviewService) RefineSubtopics(ctx context.Context, subtopics []string, jobRole, feedback string) (model.RefinedSubtopicList, error) {
	p, err := s.Run(ctx, model.GenerationRequest{
		Kind:               model.OpRefinement,
		JobRole:            jobRole,
		Subtopics:          subtopics,
		ValidationFeedback: feedback,
	})
	if err != nil {
		return model.RefinedSubtopicList{}, err
	}
	refined, ok := p.(model.RefinedSubtopicList)
	if !ok {
		return model.RefinedSubtopicList{}, payloadMismatch(model.OpRefinement, p)
	}
	return refined, nil
}

func (s *InterviewService) CategorizeSubtopics(ctx context.Context, subtopics []string) (model.CategoryMap, error) {
	p, err := s.Run(ctx, model.GenerationRequest{Kind: model.OpCategorization, Subtopics: subtopics})
	if err != nil {
		return nil, err
	}
	categories, ok := p.(model.CategoryMap)
	if !ok {
		return nil, payloadMismatch(model.OpCategorization, p)
	}
	return categories, nil
}

func (s *InterviewService) GenerateQuestions(ctx context.Context, subtopic string, questionType model.QuestionType, jobRole, experienceLevel string) (QuestionSet, error) {
	p, err := s.Run(ctx, model.GenerationRequest{
		Kind:            model.OpQuestions,
		Subtopic:        subtopic,
		QuestionType:    questionType,
		JobRole:         jobRole,
		ExperienceLevel: experienceLevel,
	})
	if err != nil {
		return QuestionSet{}, err
	}
	text := p.(model.FeedbackText).Text
	return QuestionSet{Questions: text, Items: extract.QuestionItems(text)}, nil
}

// CheckResponse 评分并在有用户 ID 时落库。存储失败只记录日志，评分结果照常返回。
func (s *InterviewService) CheckResponse(ctx context.Context, in CheckResponseInput) (GradingResult, error) {
	p, err := s.Run(ctx, model.GenerationRequest{Kind: model.OpGrading, Question: in.Question, Answer: in.Answer})
	if err != nil {
		return GradingResult{}, err
	}
	graded := p.(model.FeedbackText)

	score := graded.Score
	switch {
	case score == nil:
		monitoring.GradedResponses.WithLabelValues("unscored").Inc()
	case !model.ScoreInRange(*score):
		logger.Log.Warn("Score out of range, storing as null",
			zap.Int("score", *score),
			zap.String("subtopic", in.Subtopic))
		monitoring.GradedResponses.WithLabelValues("out_of_range").Inc()
		score = nil
	default:
		monitoring.GradedResponses.WithLabelValues("scored").Inc()
	}

	result := GradingResult{Feedback: graded.Text, Score: score}
	if in.UserID == nil || *in.UserID == 0 || s.Store == nil {
		return result, nil
	}

	resp := &model.QuestionResponse{
		UserID:       in.UserID,
		JobRole:      in.JobRole,
		Subtopic:     in.Subtopic,
		QuestionText: in.Question,
		UserAnswer:   in.Answer,
		Score:        score,
		Feedback:     graded.Text,
	}
	interest := &model.UserJobInterest{
		UserID:   *in.UserID,
		JobRole:  in.JobRole,
		Subtopic: in.Subtopic,
	}
	if err := s.Store.SaveGradedInteraction(ctx, resp, interest); err != nil {
		logger.Log.Error("Failed to store graded interaction",
			zap.Uint("user_id", *in.UserID),
			zap.String("subtopic", in.Subtopic),
			zap.Error(err))
		monitoring.PipelineFailures.WithLabelValues(string(model.OpGrading), "storage").Inc()
		return result, nil
	}

	result.Stored = true
	return result, nil
}

func payloadMismatch(kind model.OperationKind, p model.Payload) error {
	return util.NewPipelineError(util.ErrSchema, string(kind), fmt.Sprintf("unexpected payload %T", p), nil)
}
