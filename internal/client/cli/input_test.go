package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer

	v, err := GetSimpleText(bufio.NewReader(strings.NewReader("  hello \n")), "Enter", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, "Enter\n> ", out.String())

	v, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "Enter", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", v)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Enter", &out)
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret1")
	var out bytes.Buffer

	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(&out)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"12"}, 0, "event id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = parseID(nil, 0, "event id")
	assert.EqualError(t, err, "missing event id")
	_, err = parseID([]string{"1", "x"}, 1, "user id")
	assert.EqualError(t, err, `invalid user id "x"`)
	_, err = parseID([]string{"-3"}, 0, "event id")
	assert.Error(t, err)
}

func TestParsePage(t *testing.T) {
	p, err := parsePage([]string{"9", "3", "asc"})
	require.NoError(t, err)
	assert.Equal(t, 9, p.StartIndex)
	assert.Equal(t, 3, p.Limit)
	assert.Equal(t, "asc", p.Order)

	_, err = parsePage([]string{"next"})
	assert.Error(t, err)
}
