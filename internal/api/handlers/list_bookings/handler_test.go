package list_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/service/bookings"
	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeService struct {
	got  *models.ListBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (f *fakeService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(" 80 Bond St E ", "2026-10-15", "Scheduled", "true")
	require.NoError(t, err)
	require.NotNil(t, req.Building)
	assert.Equal(t, "80 Bond St E", *req.Building)
	require.NotNil(t, req.Date)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), *req.Date)
	require.NotNil(t, req.Status)
	assert.Equal(t, "Scheduled", *req.Status)
	assert.True(t, req.IncludeCancelled)

	req, err = ToServiceRequest("", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, req.Building)
	assert.Nil(t, req.Date)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeCancelled)

	_, err = ToServiceRequest("", "15.10.2026", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest("", "", "", "maybe")
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		target string
		svc    *fakeService
		want   int
	}{
		{
			name:   "ok",
			target: "/api/bookings?building=80+Bond+St+E",
			svc:    &fakeService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{}}},
			want:   http.StatusOK,
		},
		{name: "bad date", target: "/api/bookings?date=xx", svc: &fakeService{}, want: http.StatusBadRequest},
		{
			name:   "bad status",
			target: "/api/bookings?status=Lost",
			svc:    &fakeService{err: fmt.Errorf("%w: Lost", bookings.ErrInvalidStatus)},
			want:   http.StatusBadRequest,
		},
		{name: "internal", target: "/api/bookings", svc: &fakeService{err: bookings.ErrInternal}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"bookings": [], "total": 0}`, w.Body.String())
			}
		})
	}
}
