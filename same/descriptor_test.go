package same

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_InfersOrg(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		wantOrg string
	}{
		{name: "weather event infers WXR", event: "TOR", wantOrg: "WXR"},
		{name: "periodic test infers PEP", event: "RWT", wantOrg: "PEP"},
		{name: "unknown event infers CIV", event: "ABC", wantOrg: "CIV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Build(BuildOptions{
				Event:     tt.event,
				Locations: []string{"024031"},
				Duration:  "+0030",
				Timestamp: "3171500",
				Station:   "SCIENCE",
			})

			require.NoError(t, err)
			assert.Contains(t, body, "ZCZC-"+tt.wantOrg+"-"+tt.event+"-")
		})
	}
}

func TestBuild_DefaultsTimestampFromNow(t *testing.T) {
	body, err := Build(BuildOptions{
		Event:     "TOR",
		Locations: []string{"024031"},
		Duration:  "+0030",
		Station:   "SCIENCE",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^ZCZC-WXR-TOR-024031\+0030-\d{7}-SCIENCE-$`, body)
}

func TestBuild_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name string
		opts BuildOptions
	}{
		{
			name: "bad event code",
			opts: BuildOptions{Event: "torr", Locations: []string{"024031"}, Duration: "+0030", Station: "X"},
		},
		{
			name: "no locations",
			opts: BuildOptions{Event: "TOR", Locations: nil, Duration: "+0030", Station: "X"},
		},
		{
			name: "too many locations",
			opts: BuildOptions{Event: "TOR", Locations: make([]string, 32), Duration: "+0030", Station: "X"},
		},
		{
			name: "bad location code",
			opts: BuildOptions{Event: "TOR", Locations: []string{"abcdef"}, Duration: "+0030", Station: "X"},
		},
		{
			name: "bad duration",
			opts: BuildOptions{Event: "TOR", Locations: []string{"024031"}, Duration: "0030", Station: "X"},
		},
		{
			name: "bad station",
			opts: BuildOptions{Event: "TOR", Locations: []string{"024031"}, Duration: "+0030", Station: ""},
		},
		{
			name: "bad org",
			opts: BuildOptions{Event: "TOR", Locations: []string{"024031"}, Duration: "+0030", Station: "X", Org: "XYZ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.opts)
			require.Error(t, err)

			var invalidErr *InvalidDescriptorError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestParse_SeedScenarios(t *testing.T) {
	d := Parse("ZCZC-WXR-SVR-024031-024033+0100-3191500-PHILLYWX-")
	assert.Equal(t, []string{"024031", "024033"}, d.Locations)
	assert.Equal(t, "+0100", d.Duration)
	assert.Equal(t, "3191500", d.Timestamp)
	assert.Equal(t, "PHILLYWX", d.Station)

	d2 := Parse("ZCZC-WXR-TOR-124031+0030-3191900-PHILLYWX-")
	require.NotEmpty(t, d2.Locations)
	assert.Equal(t, byte('1'), d2.Locations[0][0])
}

func TestParse_PartialInputYieldsNullableFields(t *testing.T) {
	d := Parse("ZCZC-WXR-TOR")
	assert.Equal(t, "WXR", d.Org)
	assert.Equal(t, "TOR", d.Event)
	assert.Empty(t, d.Locations)
	assert.Empty(t, d.Duration)
}

func TestBuildParseRoundTrip(t *testing.T) {
	body, err := Build(BuildOptions{
		Event:     "SVR",
		Locations: []string{"024031", "024033"},
		Duration:  "+0100",
		Timestamp: "3191500",
		Station:   "PHILLYWX",
	})
	require.NoError(t, err)

	d := Parse(body)
	assert.Equal(t, "WXR", d.Org)
	assert.Equal(t, "SVR", d.Event)
	assert.Equal(t, []string{"024031", "024033"}, d.Locations)
	assert.Equal(t, "+0100", d.Duration)
	assert.Equal(t, "3191500", d.Timestamp)
	assert.Equal(t, "PHILLYWX", d.Station)
}
