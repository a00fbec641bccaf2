package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Credentials
		wantErr bool
	}{
		{name: "ok", in: Credentials{Username: "admin", Password: "admin123"}},
		{name: "missing username", in: Credentials{Password: "x"}, wantErr: true},
		{name: "missing password", in: Credentials{Username: "admin"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	require.Error(t, ChangePasswordRequest{OldPassword: "a", NewPassword: "short"}.Validate())
	require.NoError(t, ChangePasswordRequest{OldPassword: "a", NewPassword: "longenough"}.Validate())
}

func TestLogListParams_QueryDefaults(t *testing.T) {
	q := LogListParams{Action: "login"}.Query()

	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "20", q.Get("pageSize"))
	assert.Equal(t, "login", q.Get("action"))
	assert.False(t, q.Has("username"))
}

func TestListParams_QueryOmitsZeroValues(t *testing.T) {
	assert.Empty(t, ListParams{}.Query())

	q := ListParams{Page: 2, PageSize: 50, Keyword: "hk"}.Query()
	assert.Equal(t, "keyword=hk&page=2&pageSize=50", q.Encode())
}
