package errors

import (
	"github.com/cristianoliveira/csf-dashboard/internal/toast"
)

// Notifier is the part of the toast controller the handler needs.
type Notifier interface {
	Enqueue(kind toast.Kind, text string, opts ...toast.EnqueueOption) string
}

// ToastHandler shows messages as dashboard toasts. Errors stay until
// dismissed; other kinds use the notifier's default lifetime.
type ToastHandler struct {
	notifier Notifier
}

var _ ErrorHandler = (*ToastHandler)(nil)

// NewToastHandler returns a handler enqueuing into notifier.
func NewToastHandler(notifier Notifier) *ToastHandler {
	return &ToastHandler{notifier: notifier}
}

func (h *ToastHandler) Error(msg string) {
	h.notifier.Enqueue(toast.KindError, msg, toast.Sticky())
}

func (h *ToastHandler) Warning(msg string) {
	h.notifier.Enqueue(toast.KindWarning, msg)
}

func (h *ToastHandler) Info(msg string) {
	h.notifier.Enqueue(toast.KindInfo, msg)
}

func (h *ToastHandler) Success(msg string) {
	h.notifier.Enqueue(toast.KindSuccess, msg)
}
