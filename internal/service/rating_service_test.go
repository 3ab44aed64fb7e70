package service

import (
	"errors"
	"testing"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"
)

func newRatingFixture(t *testing.T) (*RatingService, model.Course) {
	t.Helper()
	db := newTestDB(t)
	svc := NewRatingService(repository.NewRatingRepository(db), repository.NewContentRepository(db))

	course := model.Course{Title: "Historia II"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return svc, course
}

func TestRateCourseUpsert(t *testing.T) {
	svc, course := newRatingFixture(t)

	view, err := svc.RateCourse("user-1", course.ID, RateCourseRequest{Rating: 4, Comment: "bien"})
	if err != nil {
		t.Fatalf("RateCourse: %v", err)
	}
	if view.AvgRating != 4.0 || view.RatingsCount != 1 {
		t.Errorf("avg/count = %v/%d, want 4.0/1", view.AvgRating, view.RatingsCount)
	}

	// re-rating replaces, it does not add a second row
	view, err = svc.RateCourse("user-1", course.ID, RateCourseRequest{Rating: 2, Comment: "regular"})
	if err != nil {
		t.Fatalf("RateCourse again: %v", err)
	}
	if view.RatingsCount != 1 {
		t.Errorf("count = %d after re-rating, want 1", view.RatingsCount)
	}
	if view.UserRating == nil || *view.UserRating != 2 {
		t.Errorf("user rating = %v, want 2", view.UserRating)
	}

	if _, err := svc.RateCourse("user-2", course.ID, RateCourseRequest{Rating: 5}); err != nil {
		t.Fatalf("second user: %v", err)
	}
	view, err = svc.GetCourseRating("", course.ID)
	if err != nil {
		t.Fatalf("GetCourseRating: %v", err)
	}
	if view.AvgRating != 3.5 || view.RatingsCount != 2 {
		t.Errorf("avg/count = %v/%d, want 3.5/2", view.AvgRating, view.RatingsCount)
	}
	if view.UserRating != nil {
		t.Error("anonymous read should not carry a user rating")
	}
}

func TestRateCourseValidation(t *testing.T) {
	svc, course := newRatingFixture(t)

	if _, err := svc.RateCourse("user-1", course.ID, RateCourseRequest{Rating: 0}); !errors.Is(err, util.ErrInvalidRating) {
		t.Errorf("rating 0: got %v, want ErrInvalidRating", err)
	}
	if _, err := svc.RateCourse("user-1", course.ID, RateCourseRequest{Rating: 6}); !errors.Is(err, util.ErrInvalidRating) {
		t.Errorf("rating 6: got %v, want ErrInvalidRating", err)
	}
	if _, err := svc.RateCourse("user-1", "missing", RateCourseRequest{Rating: 3}); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("missing course: got %v, want ErrCourseNotFound", err)
	}
}
