package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsvetanka/ERP-Billing/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "lookup.txt", cfg.Billing.LookupPath)
	assert.Equal(t, "input.txt", cfg.Billing.InputPath)
	assert.Equal(t, "invalid_records.txt", cfg.Billing.InvalidPath)
	assert.Equal(t, "E_records.txt", cfg.Billing.EstimatedPath)
	assert.Equal(t, config.FormatPDF, cfg.Billing.Format)
	assert.Equal(t, "0.15", cfg.Billing.DaytimeRate)
	assert.Equal(t, "0.05", cfg.Billing.NighttimeRate)
	assert.Equal(t, "BGN", cfg.Billing.Currency)
	assert.False(t, cfg.Billing.DryRun)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BILLING_FORMAT", "XLSX")
	t.Setenv("BILLING_DRY_RUN", "true")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("BILLING_NIGHTTIME_RATE", "0.07")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.FormatXLSX, cfg.Billing.Format)
	assert.True(t, cfg.Billing.DryRun)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "0.07", cfg.Billing.NighttimeRate)
}

func TestLoad_ArchivoExplicito(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	file := filepath.Join(dir, "billing.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"BILLING_LOOKUP_PATH: /data/lookup.txt\nBILLING_CURRENCY: EUR\nDB_PORT: 5433\n"), 0o644))

	cfg, err := config.Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/data/lookup.txt", cfg.Billing.LookupPath)
	assert.Equal(t, "EUR", cfg.Billing.Currency)
	assert.Equal(t, 5433, cfg.DB.Port)
}

func TestLoad_ArchivoInexistente(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "no_existe.yaml"))
	require.Error(t, err)
}

func TestLoad_NoValidaFormato(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BILLING_FORMAT", "docx")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "docx", cfg.Billing.Format)

	err = cfg.Billing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BILLING_FORMAT")
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "bill", Password: "p@ss:w", DBName: "erp", SSLMode: "disable"}
	assert.Equal(t, "postgres://bill:p%40ss%3Aw@db:5432/erp?sslmode=disable", db.DSN())
}

func TestBillingConfig_Validate(t *testing.T) {
	err := config.BillingConfig{Format: config.FormatPDF}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BILLING_LOOKUP_PATH")
	assert.Contains(t, err.Error(), "BILLING_ESTIMATED_PATH")
}
