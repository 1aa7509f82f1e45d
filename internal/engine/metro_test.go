package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telarmoda/shipping/internal/engine"
)

func TestParseMetroZones(t *testing.T) {
	zones := engine.ParseMetroZones("cdmx=01,02,03;gdl=44,45;mty=64,66")

	require.Len(t, zones, 3)
	assert.Equal(t, "cdmx", zones[0].Name)
	assert.Equal(t, []string{"01", "02", "03"}, zones[0].Prefixes)
	assert.Equal(t, "gdl", zones[1].Name)
	assert.Equal(t, "mty", zones[2].Name)
}

func TestParseMetroZones_MalformedSegmentsDropped(t *testing.T) {
	zones := engine.ParseMetroZones("cdmx=01;no-equals-sign;=44;empty=;mty=64")

	require.Len(t, zones, 2)
	assert.Equal(t, "cdmx", zones[0].Name)
	assert.Equal(t, "mty", zones[1].Name)
}

func TestParseMetroZones_Empty(t *testing.T) {
	assert.Empty(t, engine.ParseMetroZones(""))
}

func TestMetroZones_ZoneFor(t *testing.T) {
	zones := engine.ParseMetroZones("cdmx=01,06;gdl=44")

	zone, ok := zones.ZoneFor("06600")
	require.True(t, ok)
	assert.Equal(t, "cdmx", zone)

	zone, ok = zones.ZoneFor("44100")
	require.True(t, ok)
	assert.Equal(t, "gdl", zone)

	_, ok = zones.ZoneFor("64000")
	assert.False(t, ok)
}

func TestMetroZones_ZoneFor_NormalizesCode(t *testing.T) {
	zones := engine.ParseMetroZones("cdmx=06")

	zone, ok := zones.ZoneFor(" 06600 ")
	require.True(t, ok)
	assert.Equal(t, "cdmx", zone)
}

func TestMetroZones_SameZone(t *testing.T) {
	zones := engine.ParseMetroZones("cdmx=01,06;gdl=44")

	zone, ok := zones.SameZone("06600", "01000")
	require.True(t, ok)
	assert.Equal(t, "cdmx", zone)

	_, ok = zones.SameZone("06600", "44100")
	assert.False(t, ok, "different zones must not count as local")

	_, ok = zones.SameZone("06600", "64000")
	assert.False(t, ok, "a destination outside every zone must not count as local")
}

func TestMetroZones_SameZone_EmptyTable(t *testing.T) {
	var zones engine.MetroZones

	_, ok := zones.SameZone("06600", "06600")
	assert.False(t, ok)
}
