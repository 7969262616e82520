package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const defaultReviewPageSize = 10

type ListReviewsInput struct {
	Rating *int
	Page   int
	Limit  int
}

// ReviewList carries the page plus the site-wide average and total, which the
// public reviews page shows above the list.
type ReviewList struct {
	Reviews       []*types.Review  `json:"reviews"`
	Pagination    types.Pagination `json:"pagination"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int64            `json:"totalReviews"`
}

type CreateReviewInput struct {
	StudentName string `json:"student_name"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

type UpdateReviewInput struct {
	StudentName *string `json:"student_name"`
	Rating      *int    `json:"rating"`
	Comment     *string `json:"comment"`
}

type ReviewService interface {
	List(ctx context.Context, in ListReviewsInput) (*ReviewList, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Review, error)
	Create(ctx context.Context, in CreateReviewInput) (*types.Review, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateReviewInput) (*types.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	db         *gorm.DB
	log        *logger.Logger
	reviewRepo repos.ReviewRepo
}

func NewReviewService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo) ReviewService {
	return &reviewService{
		db:         db,
		log:        log.With("service", "ReviewService"),
		reviewRepo: reviewRepo,
	}
}

func (rs *reviewService) List(ctx context.Context, in ListReviewsInput) (*ReviewList, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultReviewPageSize)
	reviews, total, err := rs.reviewRepo.List(ctx, repos.ReviewFilter{
		Rating: in.Rating,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*types.Review{}
	}

	avg, err := rs.reviewRepo.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	totalReviews, err := rs.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ReviewList{
		Reviews:       reviews,
		Pagination:    types.NewPagination(page, limit, total),
		AverageRating: roundRating(avg),
		TotalReviews:  totalReviews,
	}, nil
}

func (rs *reviewService) Get(ctx context.Context, id uuid.UUID) (*types.Review, error) {
	review, err := rs.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Review not found")
	}
	return review, nil
}

func (rs *reviewService) Create(ctx context.Context, in CreateReviewInput) (*types.Review, error) {
	if in.StudentName == "" || in.Rating == 0 || in.Comment == "" {
		return nil, apierr.Validation("Student name, rating, and comment are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apierr.Validation("Rating must be between 1 and 5")
	}
	review := &types.Review{
		ID:          uuid.New(),
		StudentName: in.StudentName,
		Rating:      in.Rating,
		Comment:     in.Comment,
		Date:        time.Now(),
	}
	return rs.reviewRepo.Create(ctx, review)
}

func (rs *reviewService) Update(ctx context.Context, id uuid.UUID, in UpdateReviewInput) (*types.Review, error) {
	fields := map[string]interface{}{}
	if in.StudentName != nil {
		fields["student_name"] = *in.StudentName
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, apierr.Validation("Rating must be between 1 and 5")
		}
		fields["rating"] = *in.Rating
	}
	if in.Comment != nil {
		fields["comment"] = *in.Comment
	}
	if len(fields) == 0 {
		return rs.Get(ctx, id)
	}
	review, err := rs.reviewRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, notFound(err, "Review not found")
	}
	return review, nil
}

func (rs *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(rs.reviewRepo.Delete(ctx, id), "Review not found")
}

// roundRating keeps one decimal place, matching the public display format.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
