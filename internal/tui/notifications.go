package tui

// NotificationLevel represents the severity of a notification
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelError
)

// Notification is a single status line message
type Notification struct {
	Level   NotificationLevel
	Message string
}

// notificationLimit caps how many messages the status bar keeps
const notificationLimit = 3

// NotificationState keeps the most recent notifications, newest last.
type NotificationState struct {
	notifications []Notification
}

// Add appends a notification, dropping the oldest past the limit
func (s *NotificationState) Add(level NotificationLevel, message string) {
	s.notifications = append(s.notifications, Notification{Level: level, Message: message})
	if len(s.notifications) > notificationLimit {
		s.notifications = s.notifications[len(s.notifications)-notificationLimit:]
	}
}

// Clear removes all notifications
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// All returns the current notifications
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// Last returns the newest notification
func (s *NotificationState) Last() (Notification, bool) {
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}
