package domain

// PushToken is a device FCM registration bound to a user.
type PushToken struct {
	ID        int32    `json:"id"`
	UserID    int32    `json:"user_id"`
	Role      UserRole `json:"role"`
	FCMToken  string   `json:"fcm_token"`
	CreatedOn string   `json:"created_on"`
	UpdatedOn string   `json:"updated_on"`
}

// NotificationLog is the in-app copy of a delivered notification.
type NotificationLog struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Role      UserRole          `json:"role"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedOn string            `json:"created_on"`
	UpdatedOn string            `json:"updated_on"`
}
