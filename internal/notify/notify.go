// Package notify holds the fixed list of messages shown in the
// notification popup.
package notify

// Kind classifies a notification for its indicator colour.
type Kind string

const (
	KindAlert    Kind = "alert"
	KindWarning  Kind = "warning"
	KindInfo     Kind = "info"
	KindReminder Kind = "reminder"
)

// Notification is one popup entry.
type Notification struct {
	ID        int
	Message   string
	Timestamp string
	Kind      Kind
}

var notifications = []Notification{
	{ID: 1, Message: "High temperature alert in Server Room", Timestamp: "2023-04-01 10:15:00", Kind: KindAlert},
	{ID: 2, Message: "CO2 levels above threshold in Office", Timestamp: "2023-04-01 09:30:00", Kind: KindWarning},
	{ID: 3, Message: "Humidity levels normalized in Warehouse", Timestamp: "2023-04-01 08:45:00", Kind: KindInfo},
	{ID: 4, Message: `New device "DEV056" connected`, Timestamp: "2023-04-01 07:20:00", Kind: KindInfo},
	{ID: 5, Message: `Scheduled maintenance for "DEV023" tomorrow`, Timestamp: "2023-03-31 18:00:00", Kind: KindReminder},
}

// All returns a copy of the notification list, newest first.
func All() []Notification {
	out := make([]Notification, len(notifications))
	copy(out, notifications)
	return out
}
