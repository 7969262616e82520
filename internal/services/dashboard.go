package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const defaultRecentLimit = 5

type DashboardStats struct {
	Lessons        int64   `json:"lessons"`
	Videos         int64   `json:"videos"`
	Files          int64   `json:"files"`
	Reviews        int64   `json:"reviews"`
	Messages       int64   `json:"messages"`
	UnreadMessages int64   `json:"unreadMessages"`
	TotalViews     int64   `json:"totalViews"`
	TotalDownloads int64   `json:"totalDownloads"`
	AverageRating  float64 `json:"averageRating"`
}

// AnalyticsBucket is one slot of a dense, chronologically ordered series.
type AnalyticsBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsReport struct {
	Period        string            `json:"period"`
	Lessons       []AnalyticsBucket `json:"lessons"`
	Videos        []AnalyticsBucket `json:"videos"`
	Messages      []AnalyticsBucket `json:"messages"`
	TotalLessons  int               `json:"totalLessons"`
	TotalVideos   int               `json:"totalVideos"`
	TotalMessages int               `json:"totalMessages"`
}

type UpdateSettingsInput struct {
	PrimaryColor    *string           `json:"primary_color"`
	SecondaryColor  *string           `json:"secondary_color"`
	HeroTitle       *string           `json:"hero_title"`
	HeroDescription *string           `json:"hero_description"`
	TeacherName     *string           `json:"teacher_name"`
	TeacherSubject  *string           `json:"teacher_subject"`
	TeacherPhoto    *string           `json:"teacher_photo"`
	SocialLinks     map[string]string `json:"social_links"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	RecentMessages(ctx context.Context, limit int) ([]*types.Message, error)
	RecentReviews(ctx context.Context, limit int) ([]*types.Review, error)
	PopularLessons(ctx context.Context, limit int) ([]*types.Lesson, error)
	PopularVideos(ctx context.Context, limit int) ([]*types.Video, error)
	Analytics(ctx context.Context, period string) (*AnalyticsReport, error)
	GetSettings(ctx context.Context) (*types.Settings, error)
	UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*types.Settings, error)
}

type dashboardService struct {
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	videoRepo    repos.VideoRepo
	fileRepo     repos.FileRepo
	reviewRepo   repos.ReviewRepo
	messageRepo  repos.MessageRepo
	settingsRepo repos.SettingsRepo
	now          func() time.Time
}

func NewDashboardService(
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	videoRepo repos.VideoRepo,
	fileRepo repos.FileRepo,
	reviewRepo repos.ReviewRepo,
	messageRepo repos.MessageRepo,
	settingsRepo repos.SettingsRepo,
) DashboardService {
	return &dashboardService{
		log:          log.With("service", "DashboardService"),
		lessonRepo:   lessonRepo,
		videoRepo:    videoRepo,
		fileRepo:     fileRepo,
		reviewRepo:   reviewRepo,
		messageRepo:  messageRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Stats runs the per-table aggregates concurrently. The numbers are read
// independently, so a write landing mid-aggregation can show through; that is
// acceptable for a dashboard snapshot.
func (ds *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var avg float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Lessons, err = ds.lessonRepo.Count(gctx); return })
	g.Go(func() (err error) { stats.Videos, err = ds.videoRepo.Count(gctx); return })
	g.Go(func() (err error) { stats.Files, err = ds.fileRepo.Count(gctx); return })
	g.Go(func() (err error) { stats.Reviews, err = ds.reviewRepo.Count(gctx); return })
	g.Go(func() (err error) { stats.Messages, err = ds.messageRepo.Count(gctx); return })
	g.Go(func() (err error) { stats.UnreadMessages, err = ds.messageRepo.CountUnread(gctx); return })
	g.Go(func() (err error) { stats.TotalViews, err = ds.videoRepo.SumViews(gctx); return })
	g.Go(func() (err error) { stats.TotalDownloads, err = ds.fileRepo.SumDownloads(gctx); return })
	g.Go(func() (err error) { avg, err = ds.reviewRepo.AverageRating(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.AverageRating = roundRating(avg)
	return &stats, nil
}

func (ds *dashboardService) RecentMessages(ctx context.Context, limit int) ([]*types.Message, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	messages, err := ds.messageRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*types.Message{}
	}
	return messages, nil
}

func (ds *dashboardService) RecentReviews(ctx context.Context, limit int) ([]*types.Review, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	reviews, err := ds.reviewRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*types.Review{}
	}
	return reviews, nil
}

func (ds *dashboardService) PopularLessons(ctx context.Context, limit int) ([]*types.Lesson, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	lessons, err := ds.lessonRepo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []*types.Lesson{}
	}
	return lessons, nil
}

func (ds *dashboardService) PopularVideos(ctx context.Context, limit int) ([]*types.Video, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	videos, err := ds.videoRepo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*types.Video{}
	}
	return videos, nil
}

// Analytics buckets creations over the period into a dense ordered series:
// 24 hourly buckets for 1d, otherwise one bucket per day (7 or 30). Unknown
// periods fall back to 7d.
func (ds *dashboardService) Analytics(ctx context.Context, period string) (*AnalyticsReport, error) {
	switch period {
	case "1d", "7d", "30d":
	default:
		period = "7d"
	}

	now := ds.now()
	var cutoff time.Time
	switch period {
	case "1d":
		cutoff = now.Add(-24 * time.Hour)
	case "30d":
		cutoff = now.Add(-30 * 24 * time.Hour)
	default:
		cutoff = now.Add(-7 * 24 * time.Hour)
	}

	lessons, err := ds.lessonRepo.ListCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	videos, err := ds.videoRepo.ListCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	messages, err := ds.messageRepo.ListCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	lessonTimes := make([]time.Time, len(lessons))
	for i, l := range lessons {
		lessonTimes[i] = l.CreatedAt
	}
	videoTimes := make([]time.Time, len(videos))
	for i, v := range videos {
		videoTimes[i] = v.CreatedAt
	}
	messageTimes := make([]time.Time, len(messages))
	for i, m := range messages {
		messageTimes[i] = m.CreatedAt
	}

	return &AnalyticsReport{
		Period:        period,
		Lessons:       bucketize(now, period, lessonTimes),
		Videos:        bucketize(now, period, videoTimes),
		Messages:      bucketize(now, period, messageTimes),
		TotalLessons:  len(lessons),
		TotalVideos:   len(videos),
		TotalMessages: len(messages),
	}, nil
}

func (ds *dashboardService) GetSettings(ctx context.Context) (*types.Settings, error) {
	return ds.settingsRepo.Get(ctx)
}

func (ds *dashboardService) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*types.Settings, error) {
	fields := map[string]interface{}{}
	if in.PrimaryColor != nil {
		fields["primary_color"] = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		fields["secondary_color"] = *in.SecondaryColor
	}
	if in.HeroTitle != nil {
		fields["hero_title"] = *in.HeroTitle
	}
	if in.HeroDescription != nil {
		fields["hero_description"] = *in.HeroDescription
	}
	if in.TeacherName != nil {
		fields["teacher_name"] = *in.TeacherName
	}
	if in.TeacherSubject != nil {
		fields["teacher_subject"] = *in.TeacherSubject
	}
	if in.TeacherPhoto != nil {
		fields["teacher_photo"] = *in.TeacherPhoto
	}
	if in.SocialLinks != nil {
		raw, err := json.Marshal(in.SocialLinks)
		if err != nil {
			return nil, fmt.Errorf("encode social links: %w", err)
		}
		fields["social_links"] = datatypes.JSON(raw)
	}
	return ds.settingsRepo.Update(ctx, fields)
}

// bucketize builds the dense series. Hour buckets are keyed by hour of day;
// day buckets run oldest to newest, so "Day N" is today.
func bucketize(now time.Time, period string, createdAt []time.Time) []AnalyticsBucket {
	if period == "1d" {
		buckets := make([]AnalyticsBucket, 24)
		for hour := range buckets {
			buckets[hour] = AnalyticsBucket{Date: fmt.Sprintf("%d:00", hour)}
		}
		for _, t := range createdAt {
			buckets[t.Hour()].Count++
		}
		return buckets
	}

	days := 7
	if period == "30d" {
		days = 30
	}
	buckets := make([]AnalyticsBucket, days)
	for i := range buckets {
		buckets[i] = AnalyticsBucket{Date: fmt.Sprintf("Day %d", i+1)}
	}
	for _, t := range createdAt {
		daysAgo := int(now.Sub(t).Hours() / 24)
		idx := days - 1 - daysAgo
		if idx >= 0 && idx < days {
			buckets[idx].Count++
		}
	}
	return buckets
}
