package service

import (
	"context"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	ReviewTaskID    = "1"
	reviewTaskTitle = "Review today's course materials"

	assignmentTaskPrefix = "assignment-"
)

type DailyTaskService struct {
	TaskRepo       DailyTaskStore
	EnrollmentRepo EnrollmentStore
	AssignmentRepo AssignmentStore
	SubmissionRepo SubmissionStore

	now func() time.Time
}

func NewDailyTaskService(
	taskRepo DailyTaskStore,
	enrollmentRepo EnrollmentStore,
	assignmentRepo AssignmentStore,
	submissionRepo SubmissionStore,
) *DailyTaskService {
	return &DailyTaskService{
		TaskRepo:       taskRepo,
		EnrollmentRepo: enrollmentRepo,
		AssignmentRepo: assignmentRepo,
		SubmissionRepo: submissionRepo,
		now:            model.Now,
	}
}

type DailyTaskList struct {
	Date      string            `json:"date"`
	Tasks     []model.DailyTask `json:"tasks"`
	Completed int               `json:"completed"`
	Progress  float64           `json:"progress"` // 百分比 0-100
}

// Today 生成今天的任务列表。保存的进度只在日期等于今天时生效。
func (s *DailyTaskService) Today(ctx context.Context, userID string) (*DailyTaskList, error) {
	tasks, err := s.buildTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	saved, err := s.TaskRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if saved != nil && saved.Date == today {
		for i := range tasks {
			tasks[i].Completed = saved.Tasks[tasks[i].ID]
		}
	}
	return summarize(today, tasks), nil
}

// Toggle 翻转一个任务的完成状态，并以今天的日期保存全部任务的状态
func (s *DailyTaskService) Toggle(ctx context.Context, userID, taskID string) (*DailyTaskList, error) {
	list, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	progress := model.DailyTaskProgress{Date: list.Date, Tasks: make(map[string]bool, len(list.Tasks))}
	for i := range list.Tasks {
		if list.Tasks[i].ID == taskID {
			list.Tasks[i].Completed = !list.Tasks[i].Completed
			found = true
		}
		progress.Tasks[list.Tasks[i].ID] = list.Tasks[i].Completed
	}
	if !found {
		return nil, util.ErrUnknownTask
	}

	if err := s.TaskRepo.Save(ctx, userID, progress); err != nil {
		logger.Log.Error("Failed to save daily task progress", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return summarize(list.Date, list.Tasks), nil
}

func (s *DailyTaskService) today() string {
	return s.now().Format(model.DailyTaskDateLayout)
}

// buildTasks 固定的复习任务，加上已报名课程中每个尚未提交的作业
func (s *DailyTaskService) buildTasks(ctx context.Context, userID string) ([]model.DailyTask, error) {
	tasks := []model.DailyTask{{ID: ReviewTaskID, Title: reviewTaskTitle}}

	enrollments, err := s.EnrollmentRepo.FindByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.FindByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	submitted := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		submitted[sub.AssignmentID] = true
	}

	seen := map[string]bool{ReviewTaskID: true}
	for _, e := range enrollments {
		assignments, err := s.AssignmentRepo.FindByCourse(ctx, e.CourseID)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			id := assignmentTaskPrefix + a.ID
			if submitted[a.ID] || seen[id] {
				continue
			}
			seen[id] = true
			tasks = append(tasks, model.DailyTask{ID: id, Title: "Complete assignment: " + a.Title})
		}
	}
	return tasks, nil
}

func summarize(date string, tasks []model.DailyTask) *DailyTaskList {
	list := &DailyTaskList{Date: date, Tasks: tasks}
	for _, t := range tasks {
		if t.Completed {
			list.Completed++
		}
	}
	if len(tasks) > 0 {
		list.Progress = float64(list.Completed) / float64(len(tasks)) * 100
	}
	return list
}
