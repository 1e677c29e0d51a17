package controller

import (
	"errors"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 用户练习概览
// @Description 作答总数、平均分、最常练习的职位、各子主题平均分及职位分布
// @Tags 分析
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user-profile/{id} [get]
func (c *AnalyticsController) UserProfile(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.AnalyticsService.UserProfile(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.PipelineFailure(ctx, err)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}

// @Summary 兴趣与得分
// @Description 按用户、职位、子主题汇总兴趣记录对应作答的平均分，没有匹配作答的兴趣不返回，作答都无分数时平均分为 null
// @Tags 分析
// @Produce json
// @Success 200 {object} util.Response{data=[]model.InterestScoreRow}
// @Router /api/user-job-interests-with-scores [get]
func (c *AnalyticsController) InterestScores(ctx *gin.Context) {
	rows, err := c.AnalyticsService.InterestScores(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 我的兴趣记录
// @Description 当前登录用户每次保存作答时记录的职位与子主题
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserJobInterest}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/me/interests [get]
func (c *AnalyticsController) MyInterests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	interests, err := c.AnalyticsService.UserInterests(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, interests)
}
