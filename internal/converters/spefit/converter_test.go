package spefit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
)

const sampleXML = `<SPEFitOm>
  <Date>2024-03-10</Date>
  <DOM>
    <StringId>7</StringId>
    <TubeId>33</TubeId>
    <ATWDFit>
      <Chi2>1.42</Chi2>
      <Status>1</Status>
    </ATWDFit>
    <FADCFit>
      <Chi2>2.05</Chi2>
    </FADCFit>
  </DOM>
  <DOM>
    <StringId>7</StringId>
    <TubeId>34</TubeId>
  </DOM>
</SPEFitOm>`

func TestNew(t *testing.T) {
	converter := New()
	require.NotNil(t, converter)
	assert.Equal(t, domain.TypeSPEFit, converter.Type())
	assert.Equal(t, "spe_fits", converter.Collection())
}

func TestConvert(t *testing.T) {
	result, err := New().Convert(sampleXML)
	require.NoError(t, err)

	assert.Equal(t, "SPEFit", result.Metadata["type"])
	assert.Equal(t, "2024-03-10", result.Metadata["date"])
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "07,33", first["dom_id"])

	atwdFit, ok := first["atwd_fit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.42, atwdFit["chi2"])
	assert.Equal(t, 1, atwdFit["status"])

	// FADCFit without a Status child: status defaults to 0.
	fadcFit, ok := first["fadc_fit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.05, fadcFit["chi2"])
	assert.Equal(t, 0, fadcFit["status"])
}

func TestConvert_FitsAbsent(t *testing.T) {
	result, err := New().Convert(sampleXML)
	require.NoError(t, err)

	// Neither fit element on the second DOM: both sub-objects absent.
	second := result.Records[1]
	assert.Equal(t, "07,34", second["dom_id"])
	assert.NotContains(t, second, "atwd_fit")
	assert.NotContains(t, second, "fadc_fit")
}

func TestConvert_Malformed(t *testing.T) {
	_, err := New().Convert("<SPEFit><DOM>")
	require.Error(t, err)
}
