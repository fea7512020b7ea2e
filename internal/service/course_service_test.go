package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	failOn string
	keys   []string
}

func (f *fakeUploader) UploadFile(ctx context.Context, key, localPath, contentType string) (string, error) {
	if filepath.Base(key) == f.failOn {
		return "", errors.New("bucket unavailable")
	}
	f.keys = append(f.keys, key)
	return "/uploads/" + key, nil
}

func newCourseService(r *repos, up VideoUploader) *CourseService {
	s := NewCourseService(r.courses, r.enrollments, r.videos, up)
	s.probe = func(string) (*util.VideoInfo, error) { return &util.VideoInfo{Duration: 754}, nil }
	return s
}

var teacher = Teacher{ID: "t1", Name: "Dr. Sarah Johnson"}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := newCourseService(r, &fakeUploader{})

	_, err := svc.CreateCourse(ctx, teacher, CourseRequest{Title: "  "})
	assert.ErrorIs(t, err, util.ErrMissingField)

	course, err := svc.CreateCourse(ctx, teacher, CourseRequest{Title: "Go", Description: "Concurrency", Duration: "4 weeks"})
	require.NoError(t, err)
	assert.Equal(t, "t1", course.TeacherID)
	assert.Equal(t, "Dr. Sarah Johnson", course.TeacherName)

	detail, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", detail.Title)
	assert.Empty(t, detail.UploadedVideos)

	_, err = svc.GetCourse(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCreateCourseWithVideos(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	up := &fakeUploader{}
	svc := newCourseService(r, up)

	course, err := svc.CreateCourseWithVideos(ctx, teacher, CourseRequest{Title: "Go"}, []VideoUpload{
		{Title: "Intro", FileName: "intro.mp4", Duration: "10:00"},
		{Title: "Goroutines", FileName: "goroutines.mp4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1/" + course.ID + "/intro.mp4", "t1/" + course.ID + "/goroutines.mp4"}, up.keys)

	videos, err := r.videos.FindByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, 0, videos[0].OrderIndex)
	assert.Equal(t, "10:00", videos[0].Duration)
	assert.Equal(t, 1, videos[1].OrderIndex)
	assert.Equal(t, "12:34", videos[1].Duration, "probed duration")
	assert.Equal(t, "t1/"+course.ID+"/goroutines.mp4", videos[1].FilePath)
}

func TestCreateCourseWithVideosKeepsCourseOnUploadFailure(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := newCourseService(r, &fakeUploader{failOn: "b.mp4"})

	course, err := svc.CreateCourseWithVideos(ctx, teacher, CourseRequest{Title: "Go"}, []VideoUpload{
		{Title: "A", FileName: "a.mp4"},
		{Title: "B", FileName: "b.mp4"},
		{Title: "C", FileName: "c.mp4"},
	})
	require.Error(t, err)
	require.NotNil(t, course)

	stored, err := r.courses.FindByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.Title)

	videos, err := r.videos.FindByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "A", videos[0].Title)
}

func TestSearchCourses(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	require.NoError(t, r.courses.CreateMany(ctx, sampleCourses()))
	svc := newCourseService(r, &fakeUploader{})

	cases := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"   ", 5},
		{"PYTHON", 1},
		{"sarah", 5},
		{"data", 2}, // "Advanced Data Structures" and "MySQL Database" description
		{"cobol", 0},
	}
	for _, tc := range cases {
		got, err := svc.SearchCourses(ctx, tc.query)
		require.NoError(t, err)
		assert.Len(t, got, tc.want, "query %q", tc.query)
	}
}

func TestTeacherCourses(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.addCourse(t, "c1", "Go")
	r.addCourse(t, "c2", "SQL")
	require.NoError(t, r.courses.Create(ctx, &model.Course{ID: "x1", Title: "Other", TeacherID: "t2"}))
	r.enroll(t, "s1", "c1", fixedNow)
	r.enroll(t, "s2", "c1", fixedNow)
	r.enroll(t, "s1", "c2", fixedNow)
	r.enroll(t, "s1", "x1", fixedNow)
	svc := newCourseService(r, &fakeUploader{})

	overview, err := svc.TeacherCourses(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalCourses)
	assert.Equal(t, 3, overview.TotalStudents)
	assert.Equal(t, 2, overview.Courses[0].EnrollmentCount)
	assert.Equal(t, 1, overview.Courses[1].EnrollmentCount)
}

func TestLocalStorageProviderUploadFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(src, []byte("video-bytes"), 0644))

	p := &LocalStorageProvider{Root: root}
	url, err := p.UploadFile(context.Background(), "t1/c1/clip.mp4", src, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/t1/c1/clip.mp4", url)

	data, err := os.ReadFile(filepath.Join(root, "t1", "c1", "clip.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}
