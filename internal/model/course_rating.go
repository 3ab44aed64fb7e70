package model

// CourseRating is one learner's rating of a course, 1 to 5. One row per
// (user, course); re-rating updates in place.
// swagger:model CourseRating
type CourseRating struct {
	UUIDBase
	UserID   string `gorm:"type:varchar(36);uniqueIndex:idx_rating_user_course;not null" json:"userId"`
	CourseID string `gorm:"type:varchar(36);uniqueIndex:idx_rating_user_course;not null" json:"courseId"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment,omitempty"`
}

func (CourseRating) TableName() string {
	return "course_rating"
}
