package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageKeyIsStable(t *testing.T) {
	a := PageKey("https://co.computrabajo.com/empleos-de-envigado")
	assert.Equal(t, a, PageKey("https://co.computrabajo.com/empleos-de-envigado"))
	assert.NotEqual(t, a, PageKey("https://co.computrabajo.com/empleos-de-envigado?p=2"))
	assert.True(t, strings.HasPrefix(a, KeyPrefix))
	assert.Len(t, a, len(KeyPrefix)+40)
}
