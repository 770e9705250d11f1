package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive front desk console", tuiCmd.Short)
}

func TestTUICmd_LongDescribesControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "ctrl+u")
	assert.Contains(t, tuiCmd.Long, "Tab")
	assert.Contains(t, tuiCmd.Long, "ctrl+c")
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "tui", "extra")

	assert.Error(t, err)
}

func TestSetTUIConfig(t *testing.T) {
	original := tuiConfig
	defer func() { tuiConfig = original }()

	watch := func(context.Context) (<-chan struct{}, error) { return nil, nil }
	cfg := &TUIConfig{LogFile: "/tmp/frontdesk.log", Watch: watch}

	SetTUIConfig(cfg)

	require.NotNil(t, tuiConfig)
	assert.Equal(t, "/tmp/frontdesk.log", tuiConfig.LogFile)
	assert.NotNil(t, tuiConfig.Watch)
}

func TestSetTUIConfig_Nil(t *testing.T) {
	original := tuiConfig
	defer func() { tuiConfig = original }()

	SetTUIConfig(nil)

	assert.Nil(t, tuiConfig)
}
