package service

import (
	"context"
	"testing"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDailyTaskService(r *repos, now time.Time) *DailyTaskService {
	s := NewDailyTaskService(r.tasks, r.enrollments, r.assignments, r.submissions)
	s.now = clock(now)
	return s
}

func taskIDs(list *DailyTaskList) []string {
	ids := make([]string, len(list.Tasks))
	for i, task := range list.Tasks {
		ids[i] = task.ID
	}
	return ids
}

func TestDailyTasksBuild(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.addAssignment(t, "a1", "c1")
	r.addAssignment(t, "a2", "c1")
	r.addAssignment(t, "b1", "c2")
	r.enroll(t, "s1", "c1", fixedNow)
	r.enroll(t, "s1", "c1", fixedNow)
	r.submit(t, "s1", "a2", fixedNow)

	list, err := newDailyTaskService(r, fixedNow).Today(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{ReviewTaskID, "assignment-a1"}, taskIDs(list))
	assert.Equal(t, "Review today's course materials", list.Tasks[0].Title)
	assert.Equal(t, "Complete assignment: Assignment a1", list.Tasks[1].Title)
	assert.Equal(t, "Tue Mar 05 2024", list.Date)
	assert.Zero(t, list.Completed)
	assert.Zero(t, list.Progress)
}

func TestDailyTasksToggleAndReset(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.addAssignment(t, "a1", "c1")
	r.enroll(t, "s1", "c1", fixedNow)

	svc := newDailyTaskService(r, fixedNow)
	list, err := svc.Toggle(ctx, "s1", ReviewTaskID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Completed)
	assert.Equal(t, 50.0, list.Progress)

	saved, err := r.tasks.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{ReviewTaskID: true, "assignment-a1": false}, saved.Tasks)

	// same calendar day, later hour
	later := newDailyTaskService(r, fixedNow.Add(10*time.Hour))
	list, err = later.Today(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, list.Tasks[0].Completed)

	list, err = later.Toggle(ctx, "s1", ReviewTaskID)
	require.NoError(t, err)
	assert.False(t, list.Tasks[0].Completed)
	_, err = later.Toggle(ctx, "s1", ReviewTaskID)
	require.NoError(t, err)

	tomorrow := newDailyTaskService(r, fixedNow.Add(24*time.Hour))
	list, err = tomorrow.Today(ctx, "s1")
	require.NoError(t, err)
	for _, task := range list.Tasks {
		assert.False(t, task.Completed)
	}
}

func TestDailyTasksToggleUnknown(t *testing.T) {
	svc := newDailyTaskService(newRepos(), fixedNow)
	_, err := svc.Toggle(context.Background(), "s1", "assignment-nope")
	assert.ErrorIs(t, err, util.ErrUnknownTask)
}

func TestDailyTasksPerUserNamespace(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := newDailyTaskService(r, fixedNow)

	_, err := svc.Toggle(ctx, "s1", ReviewTaskID)
	require.NoError(t, err)

	records, err := r.store.Read(ctx, model.DailyTasksCollection("s1"))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	other, err := svc.Today(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, other.Tasks[0].Completed)
}
