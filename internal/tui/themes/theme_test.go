package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range Names() {
		th, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, th.Name())
	}

	th, err := Get(" Mocha ")
	require.NoError(t, err)
	assert.Equal(t, "mocha", th.Name())

	_, err = Get("neon")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestGetOrDefault(t *testing.T) {
	assert.Equal(t, "default", GetOrDefault("neon").Name())
	assert.Equal(t, "latte", GetOrDefault("latte").Name())
}

func TestCatppuccinColors(t *testing.T) {
	mocha := NewCatppuccinTheme("mocha")
	latte := NewCatppuccinTheme("latte")

	assert.NotEmpty(t, string(mocha.Primary()))
	assert.NotEqual(t, mocha.BackgroundColor(), latte.BackgroundColor())
}
