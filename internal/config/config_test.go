package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalYAML = `
alert:
  webhook_url: https://discord.com/api/webhooks/1/abc
profile:
  title_keywords: [customer success manager]
  locations: [remote]
sources:
  linkedin:
    enabled: true
    keywords: Customer Success Manager
    location: United States
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.App.DataDir)
	assert.Equal(t, 15, cfg.Poll.IntervalMinutes)
	assert.Equal(t, 1, cfg.Alert.SpacingSeconds)
	assert.Equal(t, "Job Search Bot", cfg.Alert.Username)
	assert.Equal(t, "INBOX", cfg.Sources.Email.Mailbox)
	assert.Equal(t, 993, cfg.Sources.Email.IMAPPort)
}

func TestLoadEnvOverridesWebhook(t *testing.T) {
	t.Setenv(EnvWebhookURL, "https://discord.com/api/webhooks/9/env")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/9/env", cfg.Alert.WebhookURL)
}

func TestValidateRequiresWebhook(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
profile:
  title_keywords: [csm]
  locations: [remote]
sources:
  linkedin: {enabled: true}
`))
	require.NoError(t, err)

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "webhook_url")
}

func TestValidateRejectsBadWebhookURL(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	cfg.Alert.WebhookURL = "not a url"

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
}

func TestValidateRequiresProfileAndSources(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
alert:
  webhook_url: https://discord.com/api/webhooks/1/abc
`))
	require.NoError(t, err)

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())

	joined := ""
	for _, e := range res.Errors {
		joined += e + "\n"
	}
	assert.Contains(t, joined, "title_keywords")
	assert.Contains(t, joined, "locations")
	assert.Contains(t, joined, "no sources enabled")
}

func TestValidateEmailSourceNeedsCredentials(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	cfg.Sources.Email.Enabled = true

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
}

func TestNormalizeTrimsAndDeduplicatesKeywords(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	cfg.Profile.TitleKeywords = []string{" csm ", "CSM", "", "tam"}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, []string{"csm", "tam"}, out.Profile.TitleKeywords)
}

func TestValidateWarnsOnShortInterval(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	cfg.Poll.IntervalMinutes = 1

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.NotEmpty(t, res.Warnings)
}

func TestWriteExampleRefusesToClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, WriteExample(path))

	// the example itself loads and validates once a webhook is provided
	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Alert.WebhookURL = "https://discord.com/api/webhooks/1/abc"
	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "errors: %v", res.Errors)

	assert.Error(t, WriteExample(path))
}
