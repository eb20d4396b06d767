package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
)

const sampleXML = `<baseline>
  <date>2024-01-15</date>
  <time>04:30:00</time>
  <dom StringId="1" TubeId="61">
    <ATWDChipAChan0>137.25</ATWDChipAChan0>
    <ATWDChipAChan1>136.91</ATWDChipAChan1>
    <ATWDChipAChan2>137.02</ATWDChipAChan2>
    <ATWDChipBChan0>138.11</ATWDChipBChan0>
    <ATWDChipBChan1>137.85</ATWDChipBChan1>
    <ATWDChipBChan2>137.93</ATWDChipBChan2>
    <FADC>140.5</FADC>
  </dom>
  <dom StringId="103" TubeId="7">
    <ATWDChipAChan0>135.0</ATWDChipAChan0>
    <ATWDChipAChan1>135.1</ATWDChipAChan1>
    <ATWDChipAChan2>135.2</ATWDChipAChan2>
    <ATWDChipBChan0>135.3</ATWDChipBChan0>
    <ATWDChipBChan1>135.4</ATWDChipBChan1>
    <ATWDChipBChan2>135.5</ATWDChipBChan2>
    <FADC>139</FADC>
  </dom>
</baseline>`

func TestNew(t *testing.T) {
	converter := New()
	require.NotNil(t, converter)
	assert.Equal(t, domain.TypeBaseline, converter.Type())
	assert.Equal(t, "baselines", converter.Collection())
}

func TestConvert(t *testing.T) {
	result, err := New().Convert(sampleXML)
	require.NoError(t, err)

	assert.Equal(t, "Baseline", result.Metadata["type"])
	assert.Equal(t, "2024-01-15", result.Metadata["date"])
	assert.Equal(t, "04:30:00", result.Metadata["time"])
	assert.Equal(t, "2024-01-15 04:30:00", result.Metadata["timestamp"])

	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "01,61", first["dom_id"])
	assert.Equal(t, 1, first["string_id"])
	assert.Equal(t, 61, first["tube_id"])

	atwdA, ok := first["atwd_a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 137.25, atwdA["chan0"])
	assert.Equal(t, 136.91, atwdA["chan1"])
	assert.Equal(t, 137.02, atwdA["chan2"])

	atwdB, ok := first["atwd_b"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 138.11, atwdB["chan0"])
	assert.Equal(t, 140.5, first["fadc"])

	// Identity comes from attributes; wide string ids widen the field.
	second := result.Records[1]
	assert.Equal(t, "103,07", second["dom_id"])
	assert.Equal(t, 139, second["fadc"]) // integer literal stays int
}

func TestConvert_NoDoms(t *testing.T) {
	result, err := New().Convert(`<baseline><date>2024-01-15</date><time>04:30:00</time></baseline>`)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, "2024-01-15 04:30:00", result.Metadata["timestamp"])
}

func TestConvert_Malformed(t *testing.T) {
	_, err := New().Convert("<baseline><dom>")
	require.Error(t, err)
}
