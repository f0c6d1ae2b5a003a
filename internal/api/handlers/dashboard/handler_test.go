package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PrismCRM/internal/service/bookings"
	"github.com/m04kA/PrismCRM/internal/service/bookings/models"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeService struct {
	resp *models.DashboardResponse
	err  error
}

func (f *fakeService) Dashboard(context.Context) (*models.DashboardResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.DashboardResponse{
		TotalBookings:    12,
		UpcomingBookings: 5,
		TotalLeads:       30,
		NewLeads:         8,
		ConvertedLeads:   2,
		SystemStatus:     models.SystemOnline,
		Database:         models.DatabaseConnected,
	}}

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_bookings": 12, "upcoming_bookings": 5, "cancelled_bookings": 0,
		"total_leads": 30, "new_leads": 8, "converted_leads": 2,
		"system_status": "Online", "database": "Connected"
	}`, w.Body.String())
}

func TestHandle_Error(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: bookings.ErrInternal}, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
