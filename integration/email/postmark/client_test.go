package postmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferriDaniel/coaster/core/email"
	"github.com/AferriDaniel/coaster/integration/email/postmark"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	validConfig := postmark.Config{
		ServerToken:  "server-token",
		AccountToken: "account-token",
		Sender:       "sender@example.com",
	}

	tests := []struct {
		name    string
		mutate  func(cfg *postmark.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *postmark.Config) {},
		},
		{
			name:    "missing server token",
			mutate:  func(cfg *postmark.Config) { cfg.ServerToken = "" },
			wantErr: "ServerToken is required",
		},
		{
			name:    "missing account token",
			mutate:  func(cfg *postmark.Config) { cfg.AccountToken = "" },
			wantErr: "AccountToken is required",
		},
		{
			name:    "malformed sender",
			mutate:  func(cfg *postmark.Config) { cfg.Sender = "not-an-email" },
			wantErr: "Sender must be a valid email address",
		},
		{
			name:    "malformed reply-to",
			mutate:  func(cfg *postmark.Config) { cfg.ReplyTo = "invalid@" },
			wantErr: "ReplyTo must be a valid email address",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig
			tt.mutate(&cfg)
			client, err := postmark.New(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, client)
				assert.ErrorIs(t, err, email.ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestMustNewClient(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		postmark.MustNewClient(postmark.Config{})
	})
}
