package model

import "time"

// QuestionResponse 一次已评分的作答记录，创建后不再修改
type QuestionResponse struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *uint     `gorm:"index:idx_response_user_subtopic" json:"userId"`
	JobRole      string    `gorm:"size:200" json:"jobRole"`
	Subtopic     string    `gorm:"size:200;index:idx_response_user_subtopic" json:"subtopic"`
	QuestionText string    `gorm:"type:text" json:"questionText"`
	UserAnswer   string    `gorm:"type:text" json:"userAnswer"`
	Score        *int      `json:"score"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (QuestionResponse) TableName() string {
	return "question_responses"
}

// UserJobInterest 与 QuestionResponse 同一事务写入
type UserJobInterest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_interest_user_subtopic" json:"userId"`
	JobRole   string    `gorm:"size:200" json:"jobRole"`
	Subtopic  string    `gorm:"size:200;index:idx_interest_user_subtopic" json:"subtopic"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserJobInterest) TableName() string {
	return "user_job_interests"
}
