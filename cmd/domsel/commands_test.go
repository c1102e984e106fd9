package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domsel/domsel/filter"
)

func TestParseOptions(t *testing.T) {
	t.Run("typed values", func(t *testing.T) {
		opts, err := parseOptions([]string{"checked=true", "disabled=false", "name=agree"})
		require.NoError(t, err)
		assert.Equal(t, filter.Options{
			"checked":  true,
			"disabled": false,
			"name":     "agree",
		}, opts)
	})

	t.Run("value may contain equals", func(t *testing.T) {
		opts, err := parseOptions([]string{"with=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", opts["with"])
	})

	t.Run("empty input", func(t *testing.T) {
		opts, err := parseOptions(nil)
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("malformed pairs", func(t *testing.T) {
		for _, pair := range []string{"novalue", "=orphan"} {
			_, err := parseOptions([]string{pair})
			assert.Error(t, err, pair)
		}
	})
}
