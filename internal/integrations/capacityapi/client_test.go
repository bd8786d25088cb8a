package capacityapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CapacityService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, logger.NewNop(), nil)
}

func Test_Client_ListCapacities(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "plain array",
			body: `[{"id":"c1","locationId":"loc 1","timeSlot":"Morning","totalCapacity":5,"dayOfWeek":1,"effectiveDate":"2024-06-10T08:00:00.000Z","expiryDate":"2024-06-10T09:00:00.000Z","isActive":true}]`,
			want: 1,
		},
		{
			name: "data envelope",
			body: `{"data":[{"id":"c1"},{"id":"c2"}]}`,
			want: 2,
		},
		{
			name: "empty",
			body: `[]`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/capacities", r.URL.Path)
				assert.Equal(t, "loc 1", r.URL.Query().Get("locationId"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.ListCapacities(context.Background(), "loc 1")
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.NotNil(t, got)
		})
	}
}

func Test_Client_CreateCapacity_sendsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateCapacityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Morning", req.TimeSlot)
		assert.Equal(t, "2024-06-10T08:00:00Z", req.EffectiveDate)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"new-1","locationId":"loc-1","timeSlot":"Morning"}`))
	})

	created, err := client.CreateCapacity(context.Background(), &CreateCapacityRequest{
		LocationID:    "loc-1",
		TimeSlot:      "Morning",
		TotalCapacity: 3,
		DayOfWeek:     1,
		EffectiveDate: "2024-06-10T08:00:00Z",
		ExpiryDate:    "2024-06-10T09:00:00Z",
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)
}

func Test_Client_UpdateCapacity_partial(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/capacities/c1", r.URL.Path)

		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]interface{}{"totalCapacity": float64(0), "isActive": false}, raw)

		_, _ = w.Write([]byte(`{"id":"c1","totalCapacity":0}`))
	})

	capacity, isActive := 0, false
	_, err := client.UpdateCapacity(context.Background(), "c1", &UpdateCapacityRequest{
		TotalCapacity: &capacity,
		IsActive:      &isActive,
	})
	require.NoError(t, err)
}

func Test_Client_DeleteCapacity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteCapacity(context.Background(), "c1"))
}

func Test_Client_errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantMessage string
	}{
		{name: "validation string", status: http.StatusBadRequest, body: `{"message":"Capacity already exists for this slot"}`, wantErr: ErrValidation, wantMessage: "Capacity already exists for this slot"},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"message":["totalCapacity must be positive","timeSlot is required"]}`, wantErr: ErrValidation, wantMessage: "totalCapacity must be positive; timeSlot is required"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"Not Found"}`, wantErr: ErrNotFound, wantMessage: "Not Found"},
		{name: "conflict", status: http.StatusConflict, body: `slot is full`, wantErr: ErrConflict, wantMessage: "slot is full"},
		{name: "server error", status: http.StatusBadGateway, body: ``, wantErr: ErrUnavailable, wantMessage: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SubmitDonationRequest(context.Background(), &DonationRequest{PreferredTimeSlot: "Morning"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			msg, ok := ServerMessage(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}

func Test_Client_invalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.ListCapacities(context.Background(), "loc-1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func Test_Client_cancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCapacities(ctx, "loc-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Client_SubmitDonationRequest_omitsNilFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "2024-06-10T01:00:00Z", raw["preferredDate"])
		assert.NotContains(t, raw, "bloodGroupId")
		assert.NotContains(t, raw, "isUrgent")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"dr-7","status":"pending"}}`))
	})

	result, err := client.SubmitDonationRequest(context.Background(), &DonationRequest{
		PreferredDate:     "2024-06-10T01:00:00Z",
		PreferredTimeSlot: "Morning",
		LocationID:        "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "dr-7", result.ID)
	assert.Equal(t, "pending", result.Status)
}
