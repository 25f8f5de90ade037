package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Change to a directory without a config file
	tempDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.NotEmpty(t, cfg.LLM.BaseURL)
	assert.NotEmpty(t, cfg.LLM.Model)
	assert.Equal(t, 60, cfg.LLM.Timeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
server:
  port: 9999
  environment: "test"

llm:
  base_url: "https://test-api.example.com/v1"
  api_key: "test-key"
  model: "test-model"
  timeout: 15
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Change to temp directory so config file is found
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Environment)
	assert.Equal(t, "https://test-api.example.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 15, cfg.LLM.Timeout)
}

func TestLoad_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	malformedContent := `
server:
  port: 8080
invalid_yaml: [
  - missing_closing_bracket
`

	err := os.WriteFile(configFile, []byte(malformedContent), 0644)
	require.NoError(t, err)

	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		llm     LLMConfig
		wantErr string
	}{
		{
			name: "complete config",
			llm: LLMConfig{
				BaseURL: "https://api.example.com/v1",
				APIKey:  "key",
				Model:   "model",
			},
		},
		{
			name:    "missing api key",
			llm:     LLMConfig{BaseURL: "https://api.example.com/v1", Model: "model"},
			wantErr: "llm.api_key",
		},
		{
			name:    "missing base url",
			llm:     LLMConfig{APIKey: "key", Model: "model"},
			wantErr: "llm.base_url",
		},
		{
			name:    "missing model",
			llm:     LLMConfig{BaseURL: "https://api.example.com/v1", APIKey: "key"},
			wantErr: "llm.model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LLM: tt.llm}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
