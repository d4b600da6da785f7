package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{450 * time.Millisecond, "450ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m:30s"},
		{2*time.Hour + 5*time.Minute, "2h:5m:0s"},
		{25*time.Hour + 61*time.Second, "1d:1h:1m:1s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatTime(c.in))
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.True(t, IsURL("http://example.com/a.png"))
	assert.False(t, IsURL("images/a.png"))
	assert.False(t, IsURL("ftp://example.com/a.png"))
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, SuccessColor+"ok"+DefaultColor, Decorate("ok", SuccessColor))
}
