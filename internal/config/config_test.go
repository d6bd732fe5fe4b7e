package config_test

import (
	"testing"
	"time"

	"github.com/elysian-softech/account-service/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "8001", cfg.AppPort)
	require.Equal(t, "elysian", cfg.MongoDBName)
	require.Equal(t, 10*time.Second, cfg.MessageTimeout)
	require.Equal(t, "http://localhost:5173", cfg.FrontendURL)
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MESSAGE_TIMEOUT", "2s")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.AppPort)
	require.Equal(t, 2*time.Second, cfg.MessageTimeout)
	require.Equal(t, "client-id", cfg.Google.ClientID)
}
