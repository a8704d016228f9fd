package model

// NoticeLevel is the severity of a transient user-facing notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a toast-style message queued for the page to show once.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
