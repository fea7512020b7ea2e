package model

import (
	"time"

	"github.com/google/uuid"
)

// 集合名称（记录存储中的命名空间）
const (
	CollectionUsers       = "users"
	CollectionCourses     = "courses"
	CollectionAssignments = "assignments"
	CollectionSubmissions = "submissions"
	CollectionEnrollments = "enrollments"
	CollectionVideos      = "course_videos"

	dailyTasksCollectionPrefix = "daily_tasks_"
)

// DailyTasksCollection 每个用户独立的每日任务命名空间
func DailyTasksCollection(userID string) string {
	return dailyTasksCollectionPrefix + userID
}

func GenerateUUID() string {
	return uuid.New().String()
}

// Now 可在测试中替换
var Now = func() time.Time {
	return time.Now()
}
