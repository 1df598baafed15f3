package jsonl

import (
	"path/filepath"
	"strings"
	"testing"

	"empleos/common/errors"
	"empleos/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAppendRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw", "run.jsonl")

	first := []models.RawRecord{{Title: "Desarrollador Go", Platform: "Computrabajo", URL: "https://co.computrabajo.com/1"}}
	second := []models.RawRecord{{Title: "Analista de Datos", Platform: "Elempleo", Description: "SQL & <Python>"}}

	require.NoError(t, Write(path, first))
	require.NoError(t, Append(path, second))

	got, err := Read[models.RawRecord](path)
	require.NoError(t, err)
	assert.Equal(t, append(first, second...), got)
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	in := "{\"title\":\"a\"}\n\n   \n{\"title\":\"b\"}\n"
	got, err := Decode[models.RawRecord](strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Title)
}

func TestDecodeInvalidLine(t *testing.T) {
	_, err := Decode[models.RawRecord](strings.NewReader("{\"title\":\"a\"}\nnot json\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeInvalidInput, errors.TypeOf(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read[models.RawRecord](filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Equal(t, errors.ErrTypeNotFound, errors.TypeOf(err))
}
