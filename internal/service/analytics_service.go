package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"math"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	UserRepo      *repository.UserRepository
	ResponseRepo  *repository.QuestionResponseRepository
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	responseRepo *repository.QuestionResponseRepository,
	analyticsRepo *repository.AnalyticsRepository,
) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:      userRepo,
		ResponseRepo:  responseRepo,
		AnalyticsRepo: analyticsRepo,
	}
}

// UserProfile 每次请求都从作答记录实时计算
func (s *AnalyticsService) UserProfile(ctx context.Context, userID uint) (model.UserProfile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserProfile{}, util.ErrUserNotFound
		}
		return model.UserProfile{}, err
	}

	responses, err := s.ResponseRepo.ListByUser(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	return BuildUserProfile(user, responses), nil
}

// BuildUserProfile 平均分只统计有分数的作答；职位出现次数相同时取字典序最小的
func BuildUserProfile(user *model.User, responses []model.QuestionResponse) model.UserProfile {
	profile := model.UserProfile{
		Name:                    user.Name,
		Email:                   user.Email,
		TotalQuestions:          len(responses),
		AverageScoresBySubtopic: map[string]float64{},
		JobRoleDistribution:     map[string]int{},
	}

	var sum, scored int
	subtopicSum := map[string]int{}
	subtopicCount := map[string]int{}

	for _, r := range responses {
		if r.JobRole != "" {
			profile.JobRoleDistribution[r.JobRole]++
		}
		if r.Score == nil {
			continue
		}
		sum += *r.Score
		scored++
		if r.Subtopic != "" {
			subtopicSum[r.Subtopic] += *r.Score
			subtopicCount[r.Subtopic]++
		}
	}

	if scored > 0 {
		profile.AverageScore = round2(float64(sum) / float64(scored))
	}
	for subtopic, n := range subtopicCount {
		profile.AverageScoresBySubtopic[subtopic] = round2(float64(subtopicSum[subtopic]) / float64(n))
	}

	var best string
	bestCount := 0
	for role, n := range profile.JobRoleDistribution {
		if n > bestCount || (n == bestCount && role < best) {
			best, bestCount = role, n
		}
	}
	if bestCount > 0 {
		profile.MostInterestedCareer = &best
	}

	return profile
}

// UserInterests 当前用户的兴趣记录
func (s *AnalyticsService) UserInterests(ctx context.Context, userID uint) ([]model.UserJobInterest, error) {
	interests, err := s.ResponseRepo.ListInterestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if interests == nil {
		interests = []model.UserJobInterest{}
	}
	return interests, nil
}

func (s *AnalyticsService) InterestScores(ctx context.Context) ([]model.InterestScoreRow, error) {
	rows, err := s.AnalyticsRepo.InterestScores(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].AverageScore != nil {
			avg := round2(*rows[i].AverageScore)
			rows[i].AverageScore = &avg
		}
	}
	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
