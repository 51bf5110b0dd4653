package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/workshop-payments/internal/ledger"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
		},
		{
			name:    "missing auth",
			config:  Config{BatchSize: 100},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retries",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          10,
				RetryAttempts:      -1,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultSpreadsheetName, cfg.SpreadsheetName)
	assert.True(t, cfg.EnableFormatting)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Error(t, cfg.Validate(), "defaults carry no credentials")
}

func TestNewWriter_InvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Trip'!A1", A1Range("Trip", "A1"))
	assert.Equal(t, "'Bob''s trip'!A:Z", A1Range("Bob's trip", "A:Z"))
}

func TestMockPusher(t *testing.T) {
	m := NewMockPusher()

	id, err := m.Push(context.Background(), testStore())
	require.NoError(t, err)
	assert.Equal(t, "mock-spreadsheet", id)
	assert.Equal(t, 1, m.PushCallCount)
	require.Len(t, m.LastTabs, 2)

	m.PushFunc = func(context.Context, *ledger.Store) (string, error) {
		return "", errors.New("offline")
	}
	_, err = m.Push(context.Background(), testStore())
	require.EqualError(t, err, "offline")

	m.Reset()
	assert.Zero(t, m.PushCallCount)
}
