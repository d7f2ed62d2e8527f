package errors

import (
	"testing"

	"github.com/cristianoliveira/csf-dashboard/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Enqueue(kind toast.Kind, text string, opts ...toast.EnqueueOption) string {
	args := m.Called(kind, text, len(opts))
	return args.String(0)
}

func TestToastHandlerKinds(t *testing.T) {
	tests := []struct {
		name     string
		call     func(h *ToastHandler)
		kind     toast.Kind
		text     string
		optCount int
	}{
		{name: "error is sticky", call: func(h *ToastHandler) { h.Error("save failed") }, kind: toast.KindError, text: "save failed", optCount: 1},
		{name: "warning", call: func(h *ToastHandler) { h.Warning("slow store") }, kind: toast.KindWarning, text: "slow store"},
		{name: "info", call: func(h *ToastHandler) { h.Info("theme: dark") }, kind: toast.KindInfo, text: "theme: dark"},
		{name: "success", call: func(h *ToastHandler) { h.Success("saved") }, kind: toast.KindSuccess, text: "saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := new(MockNotifier)
			notifier.On("Enqueue", tt.kind, tt.text, tt.optCount).Return("id-1").Once()

			tt.call(NewToastHandler(notifier))

			notifier.AssertExpectations(t)
		})
	}
}

func TestToastHandlerSatisfiesErrorHandler(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("")

	var h ErrorHandler = NewToastHandler(notifier)
	h.Info("a")
	h.Warning("b")

	notifier.AssertNumberOfCalls(t, "Enqueue", 2)
	assert.Len(t, notifier.Calls, 2)
}
