package model_test

import (
	"encoding/json"
	"testing"

	"github.com/elysian-softech/account-service/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	for input, want := range map[string]model.Source{
		"App":      model.SourceApp,
		"app":      model.SourceApp,
		"GOOGLE":   model.SourceGoogle,
		"facebook": model.SourceFacebook,
	} {
		got, err := model.ParseSource(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := model.ParseSource("twitter")
	require.Error(t, err)
}

func TestUser_PasswordHashNeverInJSON(t *testing.T) {
	u := model.User{Email: "a@b.com", Source: model.SourceApp, PasswordHash: "secret-hash"}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret-hash")
}
