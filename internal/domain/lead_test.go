package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateLeadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateLeadRequest
		wantErr string
	}{
		{
			name: "valid minimal",
			req:  CreateLeadRequest{Name: "John Doe", Phone: "9876543210"},
		},
		{
			name: "valid full",
			req: CreateLeadRequest{
				Name:        "John Doe",
				Phone:       "9876543210",
				Email:       strPtr("john@example.com"),
				EventType:   strPtr("Wedding"),
				GuestsCount: intPtr(150),
				Venue:       strPtr("Chennai Hall"),
			},
		},
		{
			name:    "missing name",
			req:     CreateLeadRequest{Phone: "9876543210"},
			wantErr: "name is required",
		},
		{
			name:    "missing phone",
			req:     CreateLeadRequest{Name: "John Doe"},
			wantErr: "phone is required",
		},
		{
			name:    "malformed email",
			req:     CreateLeadRequest{Name: "John Doe", Phone: "9876543210", Email: strPtr("not-an-email")},
			wantErr: "email is malformed",
		},
		{
			name:    "negative guests count",
			req:     CreateLeadRequest{Name: "John Doe", Phone: "9876543210", GuestsCount: intPtr(-1)},
			wantErr: "guests_count must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateLeadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "stage only",
			payload: `{"stage":"Contacted"}`,
		},
		{
			name:    "clear notes with null",
			payload: `{"notes":null}`,
		},
		{
			name:    "name cannot be null",
			payload: `{"name":null}`,
			wantErr: "name cannot be cleared",
		},
		{
			name:    "phone cannot be empty",
			payload: `{"phone":""}`,
			wantErr: "phone cannot be cleared",
		},
		{
			name:    "stage cannot be null",
			payload: `{"stage":null}`,
			wantErr: "stage cannot be cleared",
		},
		{
			name:    "malformed email",
			payload: `{"email":"nope"}`,
			wantErr: "email is malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateLeadRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateLeadRequestHasChanges(t *testing.T) {
	var empty UpdateLeadRequest
	assert.False(t, empty.HasChanges())

	var req UpdateLeadRequest
	require.NoError(t, json.Unmarshal([]byte(`{"stage":"Contacted"}`), &req))
	assert.True(t, req.HasChanges())
}

func TestUpdateLeadRequestDistinguishesAbsentFromNull(t *testing.T) {
	var req UpdateLeadRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null,"stage":"Contacted"}`), &req))

	// notes present as explicit null, venue absent
	assert.True(t, req.Notes.Set)
	assert.False(t, req.Notes.Valid)
	assert.False(t, req.Venue.Set)
	assert.True(t, req.Stage.Set)
	assert.Equal(t, "Contacted", req.Stage.Value)
}
