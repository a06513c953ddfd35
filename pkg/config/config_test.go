package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PProfConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     PProfConfig
		wantErr bool
	}{
		{name: "disabled ignores address", cfg: PProfConfig{Enabled: false}},
		{name: "enabled with address", cfg: PProfConfig{Enabled: true, Addr: "localhost:6060"}},
		{name: "enabled without address", cfg: PProfConfig{Enabled: true}, wantErr: true},
		{name: "enabled with malformed address", cfg: PProfConfig{Enabled: true, Addr: "localhost"}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_DatabaseConfig_MasksPassword(t *testing.T) {
	cfg := DatabaseConfig{URL: "postgres://user:secret@db:5432/products"}

	assert.NotContains(t, cfg.String(), "secret")
	assert.Contains(t, cfg.String(), "user:xxxxx@db:5432/products")
	assert.ErrorContains(t, cfg.Validate(), "timeout")
}

func Test_LogConfig_Validate(t *testing.T) {
	assert.NoError(t, (&LogConfig{Level: "debug"}).Validate())
	assert.Error(t, (&LogConfig{Level: "loud"}).Validate())
}
