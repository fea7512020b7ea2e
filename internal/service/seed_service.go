package service

import (
	"context"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/pkg/logger"

	"go.uber.org/zap"
)

type SeedService struct {
	CourseRepo     CourseStore
	AssignmentRepo AssignmentStore

	now func() time.Time
}

func NewSeedService(courseRepo CourseStore, assignmentRepo AssignmentStore) *SeedService {
	return &SeedService{
		CourseRepo:     courseRepo,
		AssignmentRepo: assignmentRepo,
		now:            model.Now,
	}
}

// SeedSampleCourses 课程集合为空时写入示例课程和作业，返回是否写入
func (s *SeedService) SeedSampleCourses(ctx context.Context) (bool, error) {
	count, err := s.CourseRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.CourseRepo.CreateMany(ctx, sampleCourses()); err != nil {
		return false, err
	}
	if err := s.AssignmentRepo.CreateMany(ctx, sampleAssignments(s.now())); err != nil {
		return false, err
	}

	logger.Log.Info("Sample courses seeded", zap.Int("courses", len(sampleCourses())))
	return true, nil
}

const (
	sampleTeacherID   = "teacher-1"
	sampleTeacherName = "Dr. Sarah Johnson"
)

func sampleCourses() []model.Course {
	course := func(id, title, description, duration string, modules ...model.Module) model.Course {
		return model.Course{
			ID:          id,
			Title:       title,
			Description: description,
			Duration:    duration,
			TeacherID:   sampleTeacherID,
			TeacherName: sampleTeacherName,
			Modules:     modules,
		}
	}
	video := func(id, title, youtubeID, duration string) model.Video {
		return model.Video{ID: id, Title: title, URL: "https://www.youtube.com/embed/" + youtubeID, Duration: duration}
	}

	return []model.Course{
		course("course-python-101", "Python Programming",
			"Learn Python from scratch with hands-on examples and real-world projects", "8 weeks",
			model.Module{ID: "mod-py-1", Title: "Introduction to Python", Description: "Get started with Python basics and setup",
				Videos: []model.Video{
					video("vid-py-1-1", "Course Introduction", "kqtD5dpn9C8", "15:30"),
					video("vid-py-1-2", "Installing Python", "YYXdXT2l-Gg", "12:45"),
					video("vid-py-1-3", "Your First Python Program", "rfscVS0vtbw", "18:20"),
				}},
			model.Module{ID: "mod-py-2", Title: "Python Fundamentals", Description: "Variables, data types, and control structures",
				Videos: []model.Video{
					video("vid-py-2-1", "Variables and Data Types", "LKYFiINMhIM", "22:15"),
					video("vid-py-2-2", "Control Flow", "Zp5MuPOtsSY", "25:30"),
				},
				AssignmentID: "assign-py-1"},
		),
		course("course-webdev-101", "Web Development Basics",
			"Master HTML, CSS, and JavaScript fundamentals for modern web development", "10 weeks",
			model.Module{ID: "mod-web-1", Title: "HTML & CSS Basics", Description: "Learn the building blocks of web pages",
				Videos: []model.Video{
					video("vid-web-1-1", "Web Development Overview", "UB1O30fR-EE", "20:00"),
					video("vid-web-1-2", "HTML Structure", "qz0aGYrrlhU", "28:15"),
					video("vid-web-1-3", "CSS Styling", "1Rs2ND1ryYc", "32:40"),
				}},
			model.Module{ID: "mod-web-2", Title: "JavaScript Essentials", Description: "Add interactivity to your web pages",
				Videos: []model.Video{
					video("vid-web-2-1", "JavaScript Introduction", "W6NZfCO5SIk", "30:20"),
					video("vid-web-2-2", "DOM Manipulation", "5fb2aPlgoys", "35:15"),
				},
				AssignmentID: "assign-web-1"},
		),
		course("course-ds-advanced", "Advanced Data Structures",
			"Deep dive into complex data structures and algorithms", "12 weeks",
			model.Module{ID: "mod-ds-1", Title: "Trees and Graphs", Description: "Understanding hierarchical and network data structures",
				Videos: []model.Video{
					video("vid-ds-1-1", "Introduction to Trees", "qH6yxkw0u78", "25:30"),
					video("vid-ds-1-2", "Binary Search Trees", "pYT9F8_LFTM", "30:45"),
					video("vid-ds-1-3", "Graph Algorithms", "tWVWeAqZ0WU", "40:20"),
				},
				AssignmentID: "assign-ds-1"},
		),
		course("course-java-101", "Java Programming",
			"Object-oriented programming with Java from beginner to intermediate", "10 weeks",
			model.Module{ID: "mod-java-1", Title: "Java Fundamentals", Description: "Getting started with Java programming",
				Videos: []model.Video{
					video("vid-java-1-1", "Introduction to Java", "eIrMbAQSU34", "18:40"),
					video("vid-java-1-2", "Object-Oriented Concepts", "6T_HgnjoYwM", "28:50"),
				}},
			model.Module{ID: "mod-java-2", Title: "Classes and Objects", Description: "Deep dive into OOP principles",
				Videos: []model.Video{
					video("vid-java-2-1", "Creating Classes", "OKlFgjDS7FQ", "32:15"),
				},
				AssignmentID: "assign-java-1"},
		),
		course("course-mysql-101", "MySQL Database",
			"Learn database design and SQL queries with MySQL", "6 weeks",
			model.Module{ID: "mod-sql-1", Title: "Database Fundamentals", Description: "Introduction to relational databases",
				Videos: []model.Video{
					video("vid-sql-1-1", "What is a Database?", "wR0jg0eQsZA", "15:20"),
					video("vid-sql-1-2", "SQL Basics", "7S_tz1z_5bA", "35:40"),
				}},
			model.Module{ID: "mod-sql-2", Title: "Advanced Queries", Description: "Joins, subqueries, and optimization",
				Videos: []model.Video{
					video("vid-sql-2-1", "JOIN Operations", "9yeOJ0ZMUYw", "28:30"),
				},
				AssignmentID: "assign-sql-1"},
		),
	}
}

func sampleAssignments(now time.Time) []model.Assignment {
	due := func(days int) time.Time { return now.Add(time.Duration(days) * 24 * time.Hour) }
	return []model.Assignment{
		{ID: "assign-py-1", CourseID: "course-python-101", Title: "Python Fundamentals Assignment",
			Description: "Write a program that demonstrates variables, loops, and conditional statements", DueDate: due(7)},
		{ID: "assign-web-1", CourseID: "course-webdev-101", Title: "Build a Simple Web Page",
			Description: "Create a responsive web page using HTML, CSS, and JavaScript", DueDate: due(10)},
		{ID: "assign-ds-1", CourseID: "course-ds-advanced", Title: "Implement a Binary Search Tree",
			Description: "Create a BST with insert, delete, and search operations", DueDate: due(14)},
		{ID: "assign-java-1", CourseID: "course-java-101", Title: "OOP Project",
			Description: "Design a class hierarchy for a library management system", DueDate: due(12)},
		{ID: "assign-sql-1", CourseID: "course-mysql-101", Title: "Database Design Project",
			Description: "Design and implement a database schema with complex queries", DueDate: due(8)},
	}
}
