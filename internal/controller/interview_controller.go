package controller

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// swagger:model SubtopicRequest
type SubtopicRequest struct {
	JobRole         string `json:"job_role" binding:"required"`
	ExperienceLevel string `json:"experience_level" binding:"required"`
}

// swagger:model ValidationRequest
type ValidationRequest struct {
	Subtopics []string `json:"subtopics" binding:"required,min=1,dive,required"`
	JobRole   string   `json:"job_role" binding:"required"`
}

// swagger:model RefineRequest
type RefineRequest struct {
	Subtopics          []string `json:"subtopics" binding:"required,min=1,dive,required"`
	JobRole            string   `json:"job_role" binding:"required"`
	ValidationFeedback string   `json:"validation_feedback" binding:"required"`
}

// swagger:model CategorizeRequest
type CategorizeRequest struct {
	Subtopics []string `json:"subtopics" binding:"required,min=1,dive,required"`
}

// swagger:model QuestionRequest
type QuestionRequest struct {
	Subtopic        string `json:"subtopic" binding:"required"`
	QuestionType    string `json:"question_type" binding:"required,oneof=technical behavioral"`
	JobRole         string `json:"job_role" binding:"required"`
	ExperienceLevel string `json:"experience_level" binding:"required"`
}

// swagger:model CheckResponseRequest
type CheckResponseRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	UserID   *uint  `json:"user_id"`
	JobRole  string `json:"job_role"`
	Subtopic string `json:"subtopic"`
}

// @Summary 生成面试子主题
// @Description 根据职位和经验水平生成 6-8 个面试子主题
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body SubtopicRequest true "职位信息"
// @Success 200 {object} util.Response{data=model.SubtopicList}
// @Failure 422 {object} util.Response "模型输出无法解析"
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/generate-subtopics [post]
func (c *InterviewController) GenerateSubtopics(ctx *gin.Context) {
	var req SubtopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	list, err := c.InterviewService.GenerateSubtopics(ctx.Request.Context(), req.JobRole, req.ExperienceLevel)
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 校验子主题
// @Description 让模型评估子主题是否相关、分组是否合理
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body ValidationRequest true "子主题"
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/validate-subtopics [post]
func (c *InterviewController) ValidateSubtopics(ctx *gin.Context) {
	var req ValidationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.InterviewService.ValidateSubtopics(ctx.Request.Context(), req.Subtopics, req.JobRole)
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"validation_feedback": feedback})
}

// @Summary 优化子主题
// @Description 根据校验意见重新生成子主题，explanation 为模型原文
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body RefineRequest true "子主题及校验意见"
// @Success 200 {object} util.Response{data=model.RefinedSubtopicList}
// @Failure 422 {object} util.Response "模型输出无法解析"
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/refine-subtopics [post]
func (c *InterviewController) RefineSubtopics(ctx *gin.Context) {
	var req RefineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	refined, err := c.InterviewService.RefineSubtopics(ctx.Request.Context(), req.Subtopics, req.JobRole, req.ValidationFeedback)
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, refined)
}

// @Summary 子主题分类
// @Description 将子主题归入 Technical Skills / Soft Skills / Advanced Topics / General Skills
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body CategorizeRequest true "子主题"
// @Success 200 {object} util.Response{data=model.CategoryMap}
// @Failure 422 {object} util.Response "模型输出无法解析"
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/categorize-subtopics [post]
func (c *InterviewController) CategorizeSubtopics(ctx *gin.Context) {
	var req CategorizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	categories, err := c.InterviewService.CategorizeSubtopics(ctx.Request.Context(), req.Subtopics)
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary 生成面试题
// @Description 针对某个子主题生成 7 道技术或行为面试题
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body QuestionRequest true "出题参数"
// @Success 200 {object} util.Response{data=service.QuestionSet}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/generate-questions [post]
func (c *InterviewController) GenerateQuestions(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	set, err := c.InterviewService.GenerateQuestions(ctx.Request.Context(),
		req.Subtopic, model.QuestionType(req.QuestionType), req.JobRole, req.ExperienceLevel)
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, set)
}

// @Summary 评估回答
// @Description 模型给出反馈和 0-10 分；携带用户ID（或登录令牌）时保存作答和兴趣记录
// @Tags 面试准备
// @Accept json
// @Produce json
// @Param body body CheckResponseRequest true "题目与回答"
// @Success 200 {object} util.Response{data=service.GradingResult}
// @Failure 502 {object} util.Response "模型服务异常"
// @Router /api/check-response [post]
func (c *InterviewController) CheckResponse(ctx *gin.Context) {
	var req CheckResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 登录用户以令牌中的身份为准
	userID := req.UserID
	if claims := util.GetUserFromContext(ctx); claims != nil {
		id := claims.UserID
		userID = &id
	}

	result, err := c.InterviewService.CheckResponse(ctx.Request.Context(), service.CheckResponseInput{
		Question: req.Question,
		Answer:   req.Answer,
		UserID:   userID,
		JobRole:  req.JobRole,
		Subtopic: req.Subtopic,
	})
	if err != nil {
		util.PipelineFailure(ctx, err)
		return
	}
	util.Success(ctx, result)
}
