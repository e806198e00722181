package landing

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-facing message, shown as a toast by the editor
// and inline by the public page.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// NoticeRecorder keeps the last notice it received.
type NoticeRecorder struct {
	Last *Notice
}

func (r *NoticeRecorder) Notify(n Notice) { r.Last = &n }
