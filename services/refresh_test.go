package services

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Deglobeal/countrys-api/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummaryWritesArtifact(t *testing.T) {
	database := setupServiceDB(t)
	path := filepath.Join(t.TempDir(), "summary.png")

	assert.NoError(t, database.Create(&models.Country{
		Name:            "Nigeria",
		Population:      200_000_000,
		EstimatedGDP:    ptr(3.0e11),
		LastRefreshedAt: time.Now().UTC(),
	}).Error)
	assert.NoError(t, database.Create(&models.Country{
		Name:            "Utopia",
		Population:      1_000_000,
		LastRefreshedAt: time.Now().UTC(),
	}).Error)

	assert.NoError(t, RenderSummary(database, path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRenderSummaryEmptyTable(t *testing.T) {
	database := setupServiceDB(t)
	path := filepath.Join(t.TempDir(), "summary.png")

	assert.NoError(t, RenderSummary(database, path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
