package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   string `gorm:"type:varchar(36)" json:"createdBy"`
}

func (Course) TableName() string {
	return "course"
}
