package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeOctetStream = "application/octet-stream"

	// MaxVideoUploadSize 单个视频上传上限
	MaxVideoUploadSize = 512 << 20
)

var AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}

// 作业状态（学生视角）
const (
	AssignmentPending   = "pending"
	AssignmentSubmitted = "submitted"
	AssignmentGraded    = "graded"
)

// 工作流事件名，用作 prometheus 标签
const (
	EventEnroll  = "enroll"
	EventSubmit  = "submit"
	EventVerify  = "verify"
	EventGrade   = "grade"
	EventPublish = "publish"
)
