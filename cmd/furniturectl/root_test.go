package main

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePos(t *testing.T) {
	pos, err := parsePos("1, 64,-3")
	require.NoError(t, err)
	assert.Equal(t, cube.Pos{1, 64, -3}, pos)

	_, err = parsePos("1,2")
	assert.Error(t, err)
	_, err = parsePos("1,x,3")
	assert.Error(t, err)
}

func TestParseFace(t *testing.T) {
	for name, face := range faces {
		got, err := parseFace(name)
		require.NoError(t, err)
		assert.Equal(t, face, got)
		assert.Equal(t, name, faceName(face))
	}
	_, err := parseFace("sideways")
	assert.Error(t, err)
}
