package entry

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archer884/roll-report/internal/model"
)

func TestReadFileVisitsEntriesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.log")
	content := "2021-01-01 00:00|v1|1:4,6\n2021-01-02 00:00|v2|1:10\n2021-01-03 00:00|v3|2:7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var seen []model.Entry
	lines, err := ReadFile(path, func(e model.Entry) error {
		seen = append(seen, e)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, lines)
	require.Len(t, seen, 3)
	assert.Equal(t, "v1", seen[0].Version)
	assert.Equal(t, []int32{10}, seen[1].Values)
	assert.Equal(t, int32(2), seen[2].Max)
}

func TestReadFileEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	calls := 0
	lines, err := ReadFile(path, func(model.Entry) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, lines)
	assert.Zero(t, calls)
}

func TestReadFileMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")
	_, err := ReadFile(path, func(model.Entry) error { return nil })

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadStopsAtFirstBadLine(t *testing.T) {
	input := strings.Join([]string{
		"2021-01-01 00:00|v1|1:1",
		"2021-01-01 00:00|v1|5,10,20",
		"2021-01-01 00:00|v1|x:1",
	}, "\n")

	calls := 0
	lines, err := Read(strings.NewReader(input), func(model.Entry) error {
		calls++
		return nil
	})
	assert.Equal(t, 2, lines)
	assert.Equal(t, 1, calls)

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)

	var malformed *MalformedEntryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, ReasonBadDataSegment, malformed.Reason)
	assert.Equal(t, "line 2: malformed entry: bad data segment", err.Error())
}

func TestReadPropagatesCallbackError(t *testing.T) {
	stop := errors.New("stop")
	_, err := Read(strings.NewReader("2021-01-01 00:00|v1|1:1\n"), func(model.Entry) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
}

func TestReadOverlongLineIsReadError(t *testing.T) {
	line := "2021-01-01 00:00|v1|1:" + strings.Repeat("1", maxLineBytes+1)
	_, err := Read(strings.NewReader(line), func(model.Entry) error { return nil })

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
}

func TestReadInvalidUTF8IsReadError(t *testing.T) {
	calls := 0
	lines, err := Read(strings.NewReader("2021-01-01 00:00|v1|1:1\n2021-01-01 00:00|\xff\xfe|1:1\n"), func(model.Entry) error {
		calls++
		return nil
	})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, 2, lines)
	assert.Equal(t, 1, calls)
}

func TestReadFileInvalidUTF8CarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.log")
	require.NoError(t, os.WriteFile(path, []byte("2021-01-01 00:00|\xff\xfe|1:1\n"), 0o644))

	_, err := ReadFile(path, func(model.Entry) error { return nil })
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
}
