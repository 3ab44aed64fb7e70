package repository

import (
	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert creates or updates the learner's rating for a course. Conflicting
// concurrent writers resolve through the unique (user, course) index:
// second committer updates in place, never errors.
func (r *RatingRepository) Upsert(rating *model.CourseRating) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(rating).Error
}

func (r *RatingRepository) FindUserRating(userID, courseID string) (*model.CourseRating, error) {
	var rating model.CourseRating
	err := r.DB.First(&rating, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingSummary aggregates the ratings for one course.
type RatingSummary struct {
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int64   `json:"ratingsCount"`
}

func (r *RatingRepository) Summary(courseID string) (*RatingSummary, error) {
	var summary RatingSummary
	err := r.DB.Model(&model.CourseRating{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS ratings_count").
		Where("course_id = ?", courseID).
		Scan(&summary).Error
	return &summary, err
}

// TopRatedCourse is one entry of the admin "top rated" board.
type TopRatedCourse struct {
	CourseID  string  `json:"courseId"`
	Title     string  `json:"title"`
	AvgRating float64 `json:"avgRating"`
}

func (r *RatingRepository) TopRated(limit int) ([]TopRatedCourse, error) {
	var rows []TopRatedCourse
	err := r.DB.Model(&model.CourseRating{}).
		Select("course.id AS course_id, course.title, AVG(course_rating.rating) AS avg_rating").
		Joins("JOIN course ON course.id = course_rating.course_id").
		Group("course.id, course.title").
		Order("avg_rating desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
