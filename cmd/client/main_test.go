package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCells(t *testing.T) {
	positions, err := parseCells(" 1  9 ", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8}, positions)

	for _, line := range []string{"", "0", "10", "a", "1 2"} {
		_, err := parseCells(line, 1)
		assert.ErrorIs(t, err, errBadInput, "line %q", line)
	}
}

func TestInput_Cells(t *testing.T) {
	in := &input{scanner: bufio.NewScanner(strings.NewReader("?\nx\n5\n")), auto: true}

	_, err := in.cells("", 1)
	require.ErrorIs(t, err, errAutoMove)

	positions, err := in.cells("", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, positions)

	in = &input{scanner: bufio.NewScanner(strings.NewReader("?\n"))}
	_, err = in.cells("", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errAutoMove)
}

func TestRestResult(t *testing.T) {
	assert.Equal(t, winGameResult, restResult("X", true))
	assert.Equal(t, loseGameResult, restResult("O", true))
	assert.Equal(t, winGameResult+" O", restResult("O", false))
	assert.Equal(t, drawGameResult, restResult(domain.Draw, false))
}

func TestGameResult(t *testing.T) {
	assert.Equal(t, winGameResult, gameResult("X", "X", domain.Finished))
	assert.Equal(t, loseGameResult, gameResult("O", "X", domain.Finished))
	assert.Equal(t, drawGameResult, gameResult(domain.Draw, "O", domain.Finished))
	assert.Equal(t, walkoverGameResult, gameResult("O", "O", domain.Disconnected))
	assert.Equal(t, inactivityResult, gameResult(domain.NoResult, "X", domain.Inactivity))
}
