package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"coffee-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandler_List(t *testing.T) {
	svc := new(MockNotificationService)
	h := NewNotificationHandler(svc, zerolog.Nop())

	list := &model.NotificationListResponse{
		Notifications: []model.Notification{
			{ID: uuid.New(), UserID: testUserID, Title: "Xác nhận đơn hàng", Type: model.NotificationTypeOrder, CreatedAt: time.Now()},
		},
		Unread: 1,
	}
	svc.On("List", mock.Anything, testUserID).Return(list, nil)

	w := serve(t, testRequest{method: http.MethodGet, pattern: "/api/notifications", target: "/api/notifications", userID: testUserID}, h.List)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.NotificationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Unread)
	assert.Len(t, got.Notifications, 1)
	svc.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		target         string
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{name: "Marked", target: "/api/notifications/" + id.String() + "/read", expectedStatus: http.StatusNoContent, expectService: true},
		{name: "Not found", target: "/api/notifications/" + id.String() + "/read", mockError: model.ErrNotificationNotFound, expectedStatus: http.StatusNotFound, expectService: true},
		{name: "Invalid id", target: "/api/notifications/abc/read", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockNotificationService)
			h := NewNotificationHandler(svc, zerolog.Nop())
			if tt.expectService {
				svc.On("MarkRead", mock.Anything, testUserID, id).Return(tt.mockError)
			}

			w := serve(t, testRequest{
				method: http.MethodPost, pattern: "/api/notifications/{id}/read", target: tt.target, userID: testUserID,
			}, h.MarkRead)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
