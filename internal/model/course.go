package model

import "time"

// Video 课程视频（叶子值对象，创建后不可变）
type Video struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration"` // 展示用字符串，如 "15:30"
}

// Module 课程下的有序章节
type Module struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Videos       []Video `json:"videos"`
	AssignmentID string  `json:"assignmentId,omitempty"`
}

// swagger:model Course
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	TeacherID   string   `json:"teacherId"`
	TeacherName string   `json:"teacherName"`
	Modules     []Module `json:"modules,omitempty"`
}

// VideoMetadata 上传到对象存储的课程视频元数据
type VideoMetadata struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"courseId"`
	Title      string    `json:"title"`
	FilePath   string    `json:"filePath"`
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	Duration   string    `json:"duration"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// swagger:model Assignment
type Assignment struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

// IsOverdue 截止时间早于 now 即为逾期
func (a Assignment) IsOverdue(now time.Time) bool {
	return a.DueDate.Before(now)
}

// swagger:model Enrollment
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	CourseID   string    `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
