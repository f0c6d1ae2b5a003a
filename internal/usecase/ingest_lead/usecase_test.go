package ingest_lead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/events"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeLeads struct {
	created []*domain.Lead
	err     error
}

func (f *fakeLeads) Create(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	l.ID = int64(10 + len(f.created))
	f.created = append(f.created, l)
	return l, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishJSON(eventType string, _ interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestMapPayload(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantName  string
		wantEmail string
		wantPhone string
		check     func(t *testing.T, l *domain.Lead)
	}{
		{
			name: "data block",
			payload: `{"data": {"fullname": "Jane Doe", "email": "Jane@Example.com", "phone": "416-555-0100",
				"source": "Zumper", "propertyName": "80 Bond", "moveInDate": "2026-12-01",
				"promotionType": "1 month free", "sentAt": "2026-10-14T10:00:00Z"}}`,
			wantName:  "Jane Doe",
			wantEmail: "jane@example.com",
			wantPhone: "416-555-0100",
			check: func(t *testing.T, l *domain.Lead) {
				assert.Equal(t, "Zumper", deref(l.IntegrationSource))
				assert.Equal(t, "80 Bond", deref(l.PropertyName))
				assert.Equal(t, "2026-12-01", deref(l.MoveInDate))
				assert.Equal(t, "1 month free", deref(l.Promotion))
				assert.Equal(t, "2026-10-14T10:00:00Z", deref(l.SentAtRaw))
			},
		},
		{
			name: "customer and source blocks",
			payload: `{"customer": {"full_name": "John Roe", "email": "john@example.com", "phone": "647"},
				"source": {"name": "Kijiji", "ad_title": "100 Bond St E"}, "sent_at": "yesterday"}`,
			wantName:  "John Roe",
			wantEmail: "john@example.com",
			wantPhone: "647",
			check: func(t *testing.T, l *domain.Lead) {
				assert.Equal(t, "Kijiji", deref(l.IntegrationSource))
				assert.Equal(t, "100 Bond St E", deref(l.PropertyName))
				assert.Equal(t, "yesterday", deref(l.SentAtRaw))
				assert.Nil(t, l.MoveInDate)
			},
		},
		{
			name:      "first and last name",
			payload:   `{"data": {"firstName": "Ann"}, "customer": {"last_name": "Lee"}}`,
			wantName:  "Ann Lee",
			wantEmail: "<nil>",
			wantPhone: "<nil>",
		},
		{
			name:      "only last name",
			payload:   `{"customer": {"last_name": "Lee"}}`,
			wantName:  "Lee",
			wantEmail: "<nil>",
			wantPhone: "<nil>",
		},
		{
			name:      "no name",
			payload:   `{"data": {"fullname": "  "}, "customer": "not an object"}`,
			wantName:  domain.UnknownProspectName,
			wantEmail: "<nil>",
			wantPhone: "<nil>",
		},
		{
			name:      "numeric phone",
			payload:   `{"data": {"fullname": "Num", "phone": 4165550100}}`,
			wantName:  "Num",
			wantEmail: "<nil>",
			wantPhone: "4165550100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead, err := mapPayload([]byte(tt.payload))
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, lead.ProspectName)
			assert.Equal(t, tt.wantEmail, deref(lead.Email))
			assert.Equal(t, tt.wantPhone, deref(lead.Phone))
			assert.Equal(t, domain.LeadSourceRentSync, lead.Source)
			assert.Equal(t, domain.LeadStatusNew, lead.Status)
			assert.JSONEq(t, tt.payload, string(lead.RawPayload))
			if tt.check != nil {
				tt.check(t, lead)
			}
		})
	}
}

func TestMapPayload_Invalid(t *testing.T) {
	for _, payload := range []string{"", "not json", "[1, 2]", "null"} {
		_, err := mapPayload([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidPayload, payload)
	}
}

func TestExecute(t *testing.T) {
	leads := &fakeLeads{}
	pub := &fakePublisher{}
	uc := NewUseCase(leads, pub, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Payload: []byte(`{"data": {"fullname": "Jane"}}`)})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.LeadID)
	assert.Equal(t, "Jane", resp.ProspectName)
	require.Len(t, leads.created, 1)
	assert.Equal(t, []string{events.EventLeadIngested}, pub.events)
}

func TestExecute_Errors(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewUseCase(&fakeLeads{err: errors.New("db down")}, pub, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Payload: []byte(`{}`)})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.Execute(context.Background(), &Request{Payload: []byte(`{`)})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, pub.events)
}
