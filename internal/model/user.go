package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

func (r UserRole) Valid() bool {
	return r == Student || r == Teacher
}

// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty" swaggerignore:"true"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public 去掉密码哈希后返回给客户端
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
