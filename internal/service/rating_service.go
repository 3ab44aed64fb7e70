package service

import (
	"errors"
	"fmt"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"

	"gorm.io/gorm"
)

type RatingService struct {
	RatingRepo  *repository.RatingRepository
	ContentRepo *repository.ContentRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, contentRepo *repository.ContentRepository) *RatingService {
	return &RatingService{RatingRepo: ratingRepo, ContentRepo: contentRepo}
}

type RateCourseRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type CourseRatingView struct {
	CourseID     string  `json:"courseId"`
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int64   `json:"ratingsCount"`
	UserRating   *int    `json:"userRating,omitempty"`
	UserComment  string  `json:"userComment,omitempty"`
}

// RateCourse records or replaces the learner's rating for a course.
func (s *RatingService) RateCourse(userID, courseID string, req RateCourseRequest) (*CourseRatingView, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating %d out of range 1..5", util.ErrInvalidRating, req.Rating)
	}
	exists, err := s.ContentRepo.CourseExists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: course %s", util.ErrCourseNotFound, courseID)
	}

	rating := &model.CourseRating{
		UserID:   userID,
		CourseID: courseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.RatingRepo.Upsert(rating); err != nil {
		return nil, err
	}
	return s.GetCourseRating(userID, courseID)
}

// GetCourseRating returns the aggregate plus the caller's own rating when
// present. userID may be empty for anonymous reads.
func (s *RatingService) GetCourseRating(userID, courseID string) (*CourseRatingView, error) {
	exists, err := s.ContentRepo.CourseExists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: course %s", util.ErrCourseNotFound, courseID)
	}

	summary, err := s.RatingRepo.Summary(courseID)
	if err != nil {
		return nil, err
	}
	view := &CourseRatingView{
		CourseID:     courseID,
		AvgRating:    roundScore(summary.AvgRating),
		RatingsCount: summary.RatingsCount,
	}
	if userID != "" {
		own, err := s.RatingRepo.FindUserRating(userID, courseID)
		if err == nil {
			view.UserRating = &own.Rating
			view.UserComment = own.Comment
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return view, nil
}
