package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalized_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2024, 3, 14, 14, 26, 53, 0, loc)

	r := ErrorRecord{Time: local}.Normalized()

	assert.Equal(t, time.UTC, r.Time.Location())
	assert.True(t, r.Time.Equal(local), "normalization must not change the instant")
}

func TestClip_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Clip("hello", MaxHost))
}

func TestClip_ExactBoundUnchanged(t *testing.T) {
	s := strings.Repeat("x", MaxMessage)
	assert.Equal(t, s, Clip(s, MaxMessage))
}

func TestClip_TruncatesByRunes(t *testing.T) {
	s := strings.Repeat("é", 40)
	clipped := Clip(s, 30)
	assert.Equal(t, strings.Repeat("é", 30), clipped)
}

func TestClip_OverBound(t *testing.T) {
	s := strings.Repeat("x", MaxUser+1)
	assert.Len(t, Clip(s, MaxUser), MaxUser)
}
