package model

import (
	"time"
)

// Notification read states as spelled by the backend.
const (
	NotificationUnread = "UNREAD"
	NotificationRead   = "READ"
)

// Notification represents a user notification
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Message   string    `json:"message"`
	Action    string    `json:"action"`
	Route     string    `json:"route,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title,omitempty"`
}

// Unread reports whether the notification has not been read yet.
func (n Notification) Unread() bool {
	return n.Status == NotificationUnread
}

// NotificationCreate represents data for sending a notification
type NotificationCreate struct {
	UserID  int    `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
	Action  string `json:"action" binding:"required"`
	Route   string `json:"route,omitempty"`
	Title   string `json:"title,omitempty"`
}

// NotificationCountResponse represents the count of unread notifications
type NotificationCountResponse struct {
	Count int `json:"count"`
}

// NotificationMarkResponse represents the response after marking
// notifications as read
type NotificationMarkResponse struct {
	Success     bool `json:"success"`
	MarkedCount int  `json:"markedCount"`
}
