package event

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunkReader delivers its input in scripted chunks so tests control how
// lines split across reads.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n == len(r.chunks[0]) {
		r.chunks = r.chunks[1:]
	} else {
		r.chunks[0] = r.chunks[0][n:]
	}
	return n, nil
}

func TestReadLinePeeksWithoutConsuming(t *testing.T) {
	f := NewFramer(strings.NewReader("workspace>>3\nfullscreen>>1\n"))

	first, err := f.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "workspace>>3", string(first))

	again, err := f.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "workspace>>3", string(again))

	consumed, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "workspace>>3", string(consumed))

	next, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "fullscreen>>1", string(next))
}

func TestConsumeLineReassemblesSplitReads(t *testing.T) {
	r := &chunkReader{chunks: []string{"workspa", "ce>>", "3\n"}}
	f := NewFramer(r)

	line, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "workspace>>3", string(line))

	_, err = f.ConsumeLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestConsumeLineCompactsWhenBufferFills(t *testing.T) {
	// Capacity 8: after consuming "aaa\n" the start cursor sits at 4, so
	// "bbbbbb\n" cannot fit in the tail without one compaction.
	r := &chunkReader{chunks: []string{"aaa\nbb", "bb", "bb\n"}}
	f := NewFramerSize(r, 8)

	line, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "aaa", string(line))

	line, err = f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "bbbbbb", string(line))
}

func TestReadLineFailsWhenLineExceedsCapacity(t *testing.T) {
	f := NewFramerSize(strings.NewReader("0123456789abcdef\n"), 8)

	_, err := f.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)
}

func TestReadLineCompactsOnceThenFailsOnOverflow(t *testing.T) {
	// After consuming "abc\n" the start cursor sits at 4. The oversized
	// line fills the tail, gets one compaction, refills the buffer, and
	// only then trips the overflow.
	r := &chunkReader{chunks: []string{"abc\n0123", "4567", "89ab"}}
	f := NewFramerSize(r, 8)

	line, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "abc", string(line))

	_, err = f.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)
}

func TestReadLineEOFOnEmptyStream(t *testing.T) {
	f := NewFramer(strings.NewReader(""))

	_, err := f.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadLineEOFDiscardsPartialTail(t *testing.T) {
	f := NewFramer(strings.NewReader("workspace>>3"))

	_, err := f.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestConsumeLineHandlesEmptyLines(t *testing.T) {
	f := NewFramer(strings.NewReader("\nworkspace>>3\n"))

	line, err := f.ConsumeLine()
	require.NoError(t, err)
	require.Empty(t, string(line))

	line, err = f.ConsumeLine()
	require.NoError(t, err)
	require.Equal(t, "workspace>>3", string(line))
}
