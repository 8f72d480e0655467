package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/faultlog/internal/record"
)

func sampleRecord() record.ErrorRecord {
	return record.ErrorRecord{
		Application: "checkout",
		Host:        "web-01",
		Type:        "ValueError",
		Source:      "cart",
		Message:     "quantity must be positive",
		User:        "alice",
		StatusCode:  500,
		Time:        time.Date(2024, 3, 14, 9, 26, 53, 589793238, time.UTC),
		Detail:      "stack trace line 1\nstack trace line 2",
	}
}

func TestEncode_Golden(t *testing.T) {
	text, err := Encode(sampleRecord())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "encode_basic", []byte(text))
}

func TestRoundTrip_Basic(t *testing.T) {
	r := sampleRecord()

	text, err := Encode(r)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestRoundTrip_EmptyOptionalFields(t *testing.T) {
	r := record.ErrorRecord{
		Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	text, err := Encode(r)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestRoundTrip_ControlCharacters(t *testing.T) {
	r := sampleRecord()
	r.Message = "tab\there\x00null\x1bescape"
	r.Detail = "line1\r\nline2 line3"

	text, err := Encode(r)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestRoundTrip_HTMLCharactersUnescaped(t *testing.T) {
	r := sampleRecord()
	r.Detail = `<html> & "quotes" </html>`

	text, err := Encode(r)
	require.NoError(t, err)
	assert.Contains(t, text, "<html>", "HTML escaping must be disabled")

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestRoundTrip_MultiKilobyteDetail(t *testing.T) {
	r := sampleRecord()
	r.Detail = strings.Repeat("at frame.method(file.go:42)\n", 2000) // ~56 KiB

	text, err := Encode(r)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestEncode_NormalizesTimeToUTC(t *testing.T) {
	r := sampleRecord()
	loc := time.FixedZone("UTC-8", -8*60*60)
	r.Time = time.Date(2024, 3, 14, 1, 26, 53, 0, loc)

	text, err := Encode(r)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decoded.Time.Location())
	assert.True(t, decoded.Time.Equal(r.Time))
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		`{"application": 42}`,
		`{"application":"a"`,
	}
	for _, in := range cases {
		_, err := Decode(in)
		assert.Error(t, err, "input %q should not decode", in)
	}
}
