package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserType string

const (
	UserTypeChild    UserType = "child"
	UserTypeAdult    UserType = "adult"
	UserTypeEducator UserType = "educator"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;unique;not null" json:"email"`
	Password       string    `gorm:"size:100;not null" json:"-"`
	Role           UserRole  `gorm:"size:20;default:'user'" json:"role"`
	UserType       UserType  `gorm:"size:20;default:'adult'" json:"userType"`
	Location       string    `gorm:"size:100" json:"location"`
	NativeLanguage string    `gorm:"size:50" json:"nativeLanguage"`
	TargetLanguage string    `gorm:"size:50" json:"targetLanguage"`
	Avatar         string    `gorm:"size:255" json:"avatar"`
	Disabled       bool      `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time `json:"lastLogin"`
	LastSeen       time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
