package service

import (
	"context"
	"sort"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ActivityStats 计算等级和徽章所需的全部输入
type ActivityStats struct {
	Enrollments      int
	Submissions      int
	CourseCount      int // 全局课程数量
	FirstEnrolledAt  time.Time
	FirstSubmittedAt time.Time
}

// ComputeRank 按优先级依次判断，先命中者生效。
// silver/bronze 的分界取决于全局是否存在课程，而不是学生自身的行为。
func ComputeRank(s ActivityStats) model.RankTier {
	switch {
	case s.Submissions > 0:
		return model.Platinum
	case s.Enrollments > 0:
		return model.Gold
	case s.CourseCount > 0:
		return model.Silver
	default:
		return model.Bronze
	}
}

// ComputeBadges 注册徽章总是存在，其余按数量阈值授予，数量只增不减所以徽章不会消失
func ComputeBadges(s ActivityStats, now time.Time) []model.Badge {
	earned := []struct {
		id string
		ok bool
		at time.Time
	}{
		{model.BadgeRegistration, true, now},
		{model.BadgeFirstEnrollment, s.Enrollments >= 1, s.FirstEnrolledAt},
		{model.BadgeFirstSubmission, s.Submissions >= 1, s.FirstSubmittedAt},
		{model.BadgeMultiCourse, s.Enrollments >= 3, now},
		{model.BadgeProlific, s.Submissions >= 5, now},
	}

	badges := make([]model.Badge, 0, len(earned))
	for _, e := range earned {
		if !e.ok {
			continue
		}
		if b, found := model.CatalogBadge(e.id, e.at); found {
			badges = append(badges, b)
		}
	}
	return badges
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Position    int            `json:"position"`
	StudentID   string         `json:"id"`
	Name        string         `json:"name"`
	Rank        model.RankTier `json:"rank"`
	Enrollments int            `json:"enrollments"`
	Submissions int            `json:"submissions"`
	Score       int            `json:"score"`
}

// LeaderboardScore 排行榜积分
func LeaderboardScore(rank model.RankTier, enrollments, submissions int) int {
	return rank.Weight()*100 + enrollments*10 + submissions*20
}

// Profile 个人主页汇总
type Profile struct {
	User        model.User     `json:"user"`
	Rank        model.RankTier `json:"rank"`
	Badges      []model.Badge  `json:"badges"`
	Enrollments int            `json:"enrollments"`
	Submissions int            `json:"submissions"`
}

// RankingService 等级与徽章每次查询时重新计算，不做缓存
type RankingService struct {
	UserRepo       UserStore
	CourseRepo     CourseStore
	EnrollmentRepo EnrollmentStore
	SubmissionRepo SubmissionStore

	now func() time.Time
}

func NewRankingService(
	userRepo UserStore,
	courseRepo CourseStore,
	enrollmentRepo EnrollmentStore,
	submissionRepo SubmissionStore,
) *RankingService {
	return &RankingService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		SubmissionRepo: submissionRepo,
		now:            model.Now,
	}
}

// Stats 汇总某个学生的报名与提交情况。"首次"取集合中该学生的第一条记录。
func (s *RankingService) Stats(ctx context.Context, studentID string) (ActivityStats, error) {
	var stats ActivityStats

	enrollments, err := s.EnrollmentRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return stats, err
	}
	submissions, err := s.SubmissionRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return stats, err
	}
	courseCount, err := s.CourseRepo.Count(ctx)
	if err != nil {
		return stats, err
	}

	stats.Enrollments = len(enrollments)
	stats.Submissions = len(submissions)
	stats.CourseCount = courseCount
	if len(enrollments) > 0 {
		stats.FirstEnrolledAt = enrollments[0].EnrolledAt
	}
	if len(submissions) > 0 {
		stats.FirstSubmittedAt = submissions[0].SubmittedAt
	}
	return stats, nil
}

func (s *RankingService) CalculateRank(ctx context.Context, studentID string) (model.RankTier, error) {
	stats, err := s.Stats(ctx, studentID)
	if err != nil {
		return "", err
	}
	return ComputeRank(stats), nil
}

func (s *RankingService) GetBadges(ctx context.Context, studentID string) ([]model.Badge, error) {
	stats, err := s.Stats(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ComputeBadges(stats, s.now()), nil
}

// Profile 用户不存在时返回 ErrUserNotFound
func (s *RankingService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:        user.Public(),
		Rank:        ComputeRank(stats),
		Badges:      ComputeBadges(stats, s.now()),
		Enrollments: stats.Enrollments,
		Submissions: stats.Submissions,
	}, nil
}

// Leaderboard 所有学生按积分降序排列，同分保持注册顺序
func (s *RankingService) Leaderboard(ctx context.Context) (entries []LeaderboardEntry, err error) {
	ctx, span := tracing.Start(ctx, "RankingService.Leaderboard")
	defer func() { tracing.End(span, err) }()

	students, err := s.UserRepo.FindByRole(ctx, model.Student)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	courseCount, err := s.CourseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	enrollCount := make(map[string]int)
	for _, e := range enrollments {
		enrollCount[e.StudentID]++
	}
	submitCount := make(map[string]int)
	for _, sub := range submissions {
		submitCount[sub.StudentID]++
	}

	entries = make([]LeaderboardEntry, 0, len(students))
	for _, student := range students {
		stats := ActivityStats{
			Enrollments: enrollCount[student.ID],
			Submissions: submitCount[student.ID],
			CourseCount: courseCount,
		}
		rank := ComputeRank(stats)
		entries = append(entries, LeaderboardEntry{
			StudentID:   student.ID,
			Name:        student.Name,
			Rank:        rank,
			Enrollments: stats.Enrollments,
			Submissions: stats.Submissions,
			Score:       LeaderboardScore(rank, stats.Enrollments, stats.Submissions),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Position = i + 1
	}

	span.SetAttributes(attribute.Int("leaderboard.size", len(entries)))
	return entries, nil
}
