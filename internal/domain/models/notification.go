package models

import "time"

type NotificationLevel string

const (
	NotifyError NotificationLevel = "error"
	NotifyInfo  NotificationLevel = "info"
)

// Notification is an obtrusive, user-facing message.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Source  string            `json:"source"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}
