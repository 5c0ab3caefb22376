package cmd

import (
	"bytes"
	"testing"

	"mural/internal/config"
	"mural/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandStructure(t *testing.T) {
	for _, name := range []string{"serve", "stylize", "styles"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
			assert.NotEmpty(t, cmd.Short)
		})
	}
}

func TestRunStyles(t *testing.T) {
	var out bytes.Buffer
	stylesCmd.SetOut(&out)

	require.NoError(t, runStyles(stylesCmd, nil))

	for _, option := range domain.Styles() {
		assert.Contains(t, out.String(), option.Name)
	}
}

func TestResultExtension(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://cdn.example/out/123.jpg", want: ".jpg"},
		{url: "https://cdn.example/out/123.webp?sig=abc", want: ".webp"},
		{url: "https://placehold.co/600x400/png?text=Ghibli", want: ".png"},
		{url: "https://cdn.example/file.backup-archive", want: ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, resultExtension(tt.url))
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	viper.Reset()
	c, err := config.Load()
	require.NoError(t, err)
	cfg = c

	assert.Len(t, pipelineOptions(), 1)

	cfg.OpenRouter.APIKey = "sk-test"
	assert.Len(t, pipelineOptions(), 2)
}
