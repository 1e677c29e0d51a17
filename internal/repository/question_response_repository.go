package repository

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionResponseRepository struct {
	DB *gorm.DB
}

func NewQuestionResponseRepository(db *gorm.DB) *QuestionResponseRepository {
	return &QuestionResponseRepository{DB: db}
}

// SaveGradedInteraction 作答记录和兴趣记录在同一事务中写入，任一失败都整体回滚
func (r *QuestionResponseRepository) SaveGradedInteraction(ctx context.Context, resp *model.QuestionResponse, interest *model.UserJobInterest) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resp).Error; err != nil {
			return err
		}
		return tx.Create(interest).Error
	})
	if err != nil {
		return util.NewPipelineError(util.ErrStorage, "check-response", "save graded interaction", err)
	}
	return nil
}

// ListByUser 按创建顺序返回某个用户的全部作答
func (r *QuestionResponseRepository) ListByUser(ctx context.Context, userID uint) ([]model.QuestionResponse, error) {
	var responses []model.QuestionResponse
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&responses).Error
	return responses, err
}

// ListInterestsByUser 按记录顺序返回某个用户的兴趣，同一组合可能重复出现
func (r *QuestionResponseRepository) ListInterestsByUser(ctx context.Context, userID uint) ([]model.UserJobInterest, error) {
	var interests []model.UserJobInterest
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&interests).Error
	return interests, err
}
