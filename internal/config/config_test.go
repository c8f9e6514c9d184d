package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "remateagricola.db", cfg.DBPath)
	assert.Equal(t, ConverterCommand, cfg.PDFConverter)
	assert.Equal(t, "convertToPdf.js", cfg.PDFScript)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadFile_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "REMATE_DB_PATH=/data/remate.db\nPORT=9000\nALLOWED_ORIGINS=https://a.example.com, https://b.example.com\nLOG_FORMAT=JSON\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("PDF_CONVERTER", "Chrome")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/remate.db", cfg.DBPath)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ConverterChrome, cfg.PDFConverter)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
