package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/domain"
	createBooking "github.com/m04kA/PrismCRM/internal/usecase/create_booking"
	"github.com/m04kA/PrismCRM/pkg/logger"
	"github.com/m04kA/PrismCRM/pkg/ptr"
	"github.com/m04kA/PrismCRM/pkg/types"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"building": "80 Bond St E", "date": "2026-10-15", "time": "10:00",
	"name": "Jane Doe", "email": "jane@example.com", "phone": "+1 416 555 0100"}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		BookingID:  7,
		LeadID:     3,
		LeadMerged: true,
		Booking: &domain.Booking{
			ID:           7,
			LeadID:       3,
			Building:     "80 Bond St E",
			TourDate:     time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			TourTime:     types.MustTimeString("10:00"),
			Status:       domain.StatusScheduled,
			ProspectName: "Jane Doe",
			Email:        ptr.Ptr("jane@example.com"),
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}}

	w := serve(NewHandler(uc, logger.Nop()), validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"booking_id": 7,
		"lead_id": 3,
		"lead_merged": true,
		"booking": {
			"id": 7, "lead_id": 3, "building": "80 Bond St E",
			"date": "2026-10-15", "time": "10:00", "status": "Scheduled",
			"prospect_name": "Jane Doe", "email": "jane@example.com",
			"created_at": "2026-10-14T15:00:00Z", "updated_at": "2026-10-14T15:00:00Z"
		}
	}`, w.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, "10:00", uc.got.Time.String())
	assert.Equal(t, "2026-10-15", uc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, "+1 416 555 0100", uc.got.Phone)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "broken json", body: `{`, wantCode: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{
			name:     "bad date",
			body:     `{"building": "80 Bond St E", "date": "15/10/2026", "time": "10:00", "name": "a", "email": "a@b.c"}`,
			wantCode: http.StatusBadRequest,
			wantMsg:  msgInvalidDate,
		},
		{
			name:     "bad time",
			body:     `{"building": "80 Bond St E", "date": "2026-10-15", "time": "10am", "name": "a", "email": "a@b.c"}`,
			wantCode: http.StatusBadRequest,
			wantMsg:  msgInvalidTime,
		},
		{
			name:     "slot taken",
			body:     validBody,
			err:      fmt.Errorf("%w: 10:00", createBooking.ErrSlotNotAvailable),
			wantCode: http.StatusConflict,
			wantMsg:  msgSlotNotAvailable,
		},
		{
			name:     "closed day",
			body:     validBody,
			err:      fmt.Errorf("%w: %w", createBooking.ErrInvalidVisit, domain.ErrDateClosed),
			wantCode: http.StatusBadRequest,
			wantMsg:  msgDateClosed,
		},
		{
			name:     "unknown building",
			body:     validBody,
			err:      fmt.Errorf("%w: %w", createBooking.ErrInvalidVisit, domain.ErrUnknownBuilding),
			wantCode: http.StatusBadRequest,
			wantMsg:  msgUnknownBuilding,
		},
		{
			name:     "missing name",
			body:     validBody,
			err:      fmt.Errorf("%w: name is required", createBooking.ErrInvalidInput),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Name is required",
		},
		{
			name:     "internal",
			body:     validBody,
			err:      fmt.Errorf("%w: db down", createBooking.ErrInternal),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewHandler(&fakeUseCase{err: tt.err}, logger.Nop()), tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"code": %d, "message": %q}`, tt.wantCode, tt.wantMsg), w.Body.String())
		})
	}
}
