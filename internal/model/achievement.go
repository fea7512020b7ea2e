package model

import "time"

// RankTier 等级：bronze < silver < gold < platinum
type RankTier string

const (
	Bronze   RankTier = "bronze"
	Silver   RankTier = "silver"
	Gold     RankTier = "gold"
	Platinum RankTier = "platinum"
)

var rankWeights = map[RankTier]int{
	Bronze:   1,
	Silver:   2,
	Gold:     3,
	Platinum: 4,
}

// Weight 排行榜计分权重，未知等级为 0
func (r RankTier) Weight() int {
	return rankWeights[r]
}

func (r RankTier) Less(other RankTier) bool {
	return r.Weight() < other.Weight()
}

const (
	BadgeRegistration    = "registration"
	BadgeFirstEnrollment = "first-enrollment"
	BadgeFirstSubmission = "first-submission"
	BadgeMultiCourse     = "multi-course"
	BadgeProlific        = "prolific"
)

// Badge 徽章不落库，每次查询时根据报名/提交数量重新计算
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// BadgeCatalog 固定的徽章目录，顺序即展示顺序
var BadgeCatalog = []Badge{
	{ID: BadgeRegistration, Name: "Getting Started", Description: "Completed registration", Icon: "🎓"},
	{ID: BadgeFirstEnrollment, Name: "First Step", Description: "Enrolled in your first course", Icon: "📚"},
	{ID: BadgeFirstSubmission, Name: "Achiever", Description: "Submitted your first assignment", Icon: "✨"},
	{ID: BadgeMultiCourse, Name: "Dedicated Learner", Description: "Enrolled in 3+ courses", Icon: "🌟"},
	{ID: BadgeProlific, Name: "Prolific Student", Description: "Submitted 5+ assignments", Icon: "🏆"},
}

// CatalogBadge 返回目录中的徽章副本并设置获得时间
func CatalogBadge(id string, earnedAt time.Time) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			b.EarnedAt = earnedAt
			return b, true
		}
	}
	return Badge{}, false
}
