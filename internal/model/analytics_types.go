package model

// UserProfile 用户统计概览，每次请求实时计算
type UserProfile struct {
	Name                    string             `json:"name"`
	Email                   string             `json:"email"`
	TotalQuestions          int                `json:"total_questions"`
	AverageScore            float64            `json:"average_score"`
	MostInterestedCareer    *string            `json:"most_interested_career"`
	AverageScoresBySubtopic map[string]float64 `json:"average_scores_by_subtopic"`
	JobRoleDistribution     map[string]int     `json:"job_role_distribution"`
}

// InterestScoreRow 兴趣与得分的内连接结果，没有匹配作答的兴趣不会出现；
// 匹配的作答都没有分数时 AverageScore 为 null
type InterestScoreRow struct {
	UserID       uint     `json:"user_id"`
	JobRole      string   `json:"job_role"`
	Subtopic     string   `json:"subtopic"`
	AverageScore *float64 `json:"average_score"`
}
