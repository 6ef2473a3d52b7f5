package domain

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// Notification é a mensagem transitória exibida ao usuário
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
}

func Success(title, description string) Notification {
	return Notification{Kind: NotificationSuccess, Title: title, Description: description}
}

func Warning(title, description string) Notification {
	return Notification{Kind: NotificationWarning, Title: title, Description: description}
}

func Failure(title, description string) Notification {
	return Notification{Kind: NotificationError, Title: title, Description: description}
}
