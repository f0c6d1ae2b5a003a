package list_leads

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/service/leads"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeService struct {
	got  *models.ListLeadsRequest
	resp *models.LeadListResponse
	err  error
}

func (f *fakeService) List(_ context.Context, req *models.ListLeadsRequest) (*models.LeadListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestToServiceRequest(t *testing.T) {
	q := url.Values{}
	q.Set("skip", "40")
	q.Set("limit", "20")
	q.Set("status", "New")
	q.Set("search", " jane ")
	q.Set("source", "rent")
	q.Set("start_date", "2026-10-01")
	q.Set("end_date", "2026-10-14")
	q.Set("sort_by", "prospect_name")
	q.Set("sort_order", "asc")

	req, err := ToServiceRequest(q)
	require.NoError(t, err)

	assert.Equal(t, 40, req.Skip)
	require.NotNil(t, req.Limit)
	assert.Equal(t, 20, *req.Limit)
	assert.Equal(t, "New", *req.Status)
	assert.Equal(t, "jane", *req.Search)
	assert.Equal(t, "rent", *req.Source)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), *req.EndDate)
	assert.Equal(t, "prospect_name", req.SortBy)
	assert.Equal(t, "asc", req.SortOrder)
}

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest(url.Values{})
	require.NoError(t, err)
	assert.Zero(t, req.Skip)
	assert.Nil(t, req.Limit)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.StartDate)
}

func TestToServiceRequest_ExplicitZeroLimit(t *testing.T) {
	req, err := ToServiceRequest(url.Values{"limit": {"0"}})
	require.NoError(t, err)
	require.NotNil(t, req.Limit)
	assert.Equal(t, 0, *req.Limit)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, raw := range []string{"skip=ten", "limit=1.5", "start_date=01-10-2026", "end_date=yesterday"} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, err = ToServiceRequest(q)
		assert.Error(t, err, raw)
	}
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
			target: "/api/leads?limit=10",
			svc:    &fakeService{resp: &models.LeadListResponse{Items: []models.LeadResponse{}, Limit: 10}},
			want:   http.StatusOK,
		},
		{name: "bad skip", target: "/api/leads?skip=-", svc: &fakeService{}, want: http.StatusBadRequest},
		{
			name:   "limit out of range",
			target: "/api/leads?limit=500",
			svc:    &fakeService{err: fmt.Errorf("%w: limit", leads.ErrInvalidInput)},
			want:   http.StatusBadRequest,
		},
		{
			name:   "unknown status",
			target: "/api/leads?status=Hot",
			svc:    &fakeService{err: fmt.Errorf("%w: Hot", leads.ErrInvalidStatus)},
			want:   http.StatusBadRequest,
		},
		{name: "internal", target: "/api/leads", svc: &fakeService{err: leads.ErrInternal}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"items": [], "total": 0, "skip": 0, "limit": 10}`, w.Body.String())
			}
		})
	}
}
