package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("UTC"))
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus_Mons"))

	loc := Location("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}

func TestNowIn(t *testing.T) {
	got := NowIn("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", got.Location().String())

	// invalid zones fall back to UTC instead of failing
	assert.Equal(t, time.UTC, NowIn("nope").Location())
}
