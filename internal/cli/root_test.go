package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFormat(t *testing.T) {
	for _, f := range ValidFormats {
		assert.True(t, isValidFormat(f), f)
	}
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rulefire "+Version)
}

func TestVersionCommand_YAML(t *testing.T) {
	out, err := execute(t, "version", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version: "+Version)
}
