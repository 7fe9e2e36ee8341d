package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	Role         string `gorm:"default:student"` // student, teacher, admin
	Institution  string
	PasswordHash string `gorm:"not null"`
}

// LeaderboardEntry is keyed by email rather than user ID so points can be
// awarded before (or without) a matching account existing.
type LeaderboardEntry struct {
	gorm.Model
	Email  string `gorm:"unique;not null"`
	Points int    `gorm:"default:0"`
}

type UserProgress struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
	Level       int       `gorm:"default:1"`
	XP          int       `gorm:"default:0"`
	XPNextLevel int       `gorm:"default:1000"` // XP needed for next level
	StreakDays  int       `gorm:"default:0"`
	LastActive  time.Time
	Badge       string // badge name or URL
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}

type Video struct {
	gorm.Model
	Title       string    `gorm:"not null"`
	Theme       string    `gorm:"not null;index"`
	Description string
	Thumbnail   string    // stored blob path
	File        string    // stored blob path
	VideoURL    string    // external URL alternative to File
	UploadedAt  time.Time `gorm:"autoCreateTime"`
}

type CompletedVideo struct {
	gorm.Model
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_video"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
	VideoID     uint      `gorm:"not null;uniqueIndex:idx_user_video"`
	Video       *Video    `gorm:"constraint:OnDelete:CASCADE"`
	CompletedAt time.Time
}
