// Package domain defines the persistence models for users, sessions, API
// keys, and posts. These types are mapped with GORM and form the core data
// layer of the application.
package domain

import (
	"time"
)

// User represents an account. The email address and password hash are never
// serialized; only the public username and timestamps leave the server.
//
// The unique indexes are named explicitly (users_email_key,
// users_username_key) because conflict classification inspects the
// constraint name reported by the database to decide which field collided.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"-"          gorm:"type:varchar(254);not null;uniqueIndex:users_email_key"`
	Password  []byte    `json:"-"          gorm:"not null"`
	Username  string    `json:"username"   gorm:"type:varchar(16);not null;uniqueIndex:users_username_key"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Session is a server-tracked login, keyed by an opaque identifier stored in
// the client's session cookie. Sessions are deleted on logout and cascade
// away with their owning user.
type Session struct {
	ID        string    `json:"session_id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"-"          gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }

// APIKey is a long-lived opaque credential, an alternative to session
// cookies for automated clients. The key id itself is the secret, so it is
// serialized under "key" and the owner is hidden.
type APIKey struct {
	ID        string    `json:"key"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"-"          gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for APIKey.
func (APIKey) TableName() string { return "api_keys" }

// Post is a single piece of user-created content, in Markdown.
type Post struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_posts"`
	Title     string    `json:"title"      gorm:"type:varchar(128);not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }
