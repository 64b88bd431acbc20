package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/fieldops-monitor/internal/table"
)

func TestHaversine(t *testing.T) {
	// One degree of longitude at the equator is about 111.2 km.
	assert.InDelta(t, 111.2, Haversine(0, 0, 0, 1), 0.5)

	// Same point, zero distance.
	assert.Equal(t, 0.0, Haversine(48.85, 2.35, 48.85, 2.35))

	// Symmetric.
	assert.Equal(t,
		Haversine(48.85, 2.35, 40.42, -3.70),
		Haversine(40.42, -3.70, 48.85, 2.35))
}

func TestHaversineCells(t *testing.T) {
	cell := func(s string) table.Value { return table.Value{Raw: s} }

	d := haversineCells(cell("0"), cell("0"), cell("0"), cell("1"))
	require.NotNil(t, d)
	assert.Equal(t, 111.2, *d)

	// Any non-numeric coordinate disables the distance.
	assert.Nil(t, haversineCells(cell(""), cell("0"), cell("0"), cell("1")))
	assert.Nil(t, haversineCells(cell("0"), cell("0"), cell("north"), cell("1")))
}
