package update_lead_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/service/leads"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

type fakeService struct {
	gotReq *models.UpdateStatusRequest
	err    error
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.LeadResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LeadResponse{ID: id, Status: req.Status, IsConverted: req.Status == "Converted"}, nil
}

func serve(svc LeadService, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/leads/"+id+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"leadId": id})
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, r)
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "4", `{"status": "Converted"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Converted", svc.gotReq.Status)
	assert.Contains(t, w.Body.String(), `"is_converted":true`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		err  error
		want int
	}{
		{name: "bad id", id: "-1", body: `{"status": "Lost"}`, want: http.StatusBadRequest},
		{name: "empty body", id: "1", body: ``, want: http.StatusBadRequest},
		{name: "bad status", id: "1", body: `{"status": "Hot"}`, err: leads.ErrInvalidStatus, want: http.StatusBadRequest},
		{name: "missing", id: "1", body: `{"status": "Lost"}`, err: leads.ErrLeadNotFound, want: http.StatusNotFound},
		{name: "internal", id: "1", body: `{"status": "Lost"}`, err: leads.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.id, tt.body).Code)
		})
	}
}
