package repository

import (
	"context"
	"interview_prep_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

type interestScore struct {
	UserID       uint
	JobRole      string
	Subtopic     string
	AverageScore *float64
}

// InterestScores 兴趣与作答按 (user_id, subtopic) 内连接，没有作答的组合不返回；
// 作答全部无分数时平均分为 NULL。
// 平均分在服务层保留两位小数。
func (r *AnalyticsRepository) InterestScores(ctx context.Context) ([]model.InterestScoreRow, error) {
	var rows []interestScore
	err := r.DB.WithContext(ctx).
		Table("user_job_interests AS i").
		Select("i.user_id AS user_id, i.job_role AS job_role, i.subtopic AS subtopic, AVG(r.score) AS average_score").
		Joins("INNER JOIN question_responses AS r ON r.user_id = i.user_id AND r.subtopic = i.subtopic").
		Group("i.user_id, i.job_role, i.subtopic").
		Order("i.user_id, i.job_role, i.subtopic").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.InterestScoreRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.InterestScoreRow{
			UserID:       row.UserID,
			JobRole:      row.JobRole,
			Subtopic:     row.Subtopic,
			AverageScore: row.AverageScore,
		})
	}
	return out, nil
}
