package enums

import "fmt"

// NotificationType tags the event that produced a notification. The literal
// values are part of the client contract and must not change.
type NotificationType string

const (
	NotificationTypeReminder NotificationType = "Reminder"
	NotificationTypeWelcome  NotificationType = "Welcome"
	NotificationTypeCredit   NotificationType = "Credit Added"
	NotificationTypePayment  NotificationType = "Payment Received"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeReminder,
	NotificationTypeWelcome,
	NotificationTypeCredit,
	NotificationTypePayment,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
