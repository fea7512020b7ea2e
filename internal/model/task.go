package model

// DailyTaskDateLayout 按自然日比较，与保存的日期字符串逐字比较
const DailyTaskDateLayout = "Mon Jan 02 2006"

// DailyTaskProgress 每个用户每日任务完成状态，日期变化后失效
type DailyTaskProgress struct {
	Date  string          `json:"date"`
	Tasks map[string]bool `json:"tasks"`
}

// DailyTask 每日任务项
type DailyTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
