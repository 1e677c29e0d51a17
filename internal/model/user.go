package model

// swagger:model User
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`

	// 关联关系在定义时声明外键，不在运行期修改
	Responses    []QuestionResponse `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	JobInterests []UserJobInterest  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
