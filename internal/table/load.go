package table

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/solver/internal/codec"
)

// LoadFile opens path and decodes a table from it.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Load decodes a table from r. The stream must end right after the matrix.
// No partial table is ever returned.
func Load(r io.Reader) (*Table, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	tr := io.TeeReader(r, h)

	var n uint32
	if err := binary.Read(tr, binary.LittleEndian, &n); err != nil {
		return nil, truncated("word count", err)
	}
	if n > MaxWords {
		return nil, fmt.Errorf("%w: word count %d exceeds %d", ErrCorruptData, n, MaxWords)
	}

	raw, err := readN(tr, int64(n)*4)
	if err != nil {
		return nil, truncated("words", err)
	}
	ws := make([]codec.WordID, n)
	for i := range ws {
		ws[i] = codec.WordID(binary.LittleEndian.Uint32(raw[i*4:]))
	}

	scores, err := readN(tr, int64(n)*int64(n))
	if err != nil {
		return nil, truncated("scores", err)
	}
	for i, s := range scores {
		if !codec.OutcomeID(s).Valid() {
			return nil, fmt.Errorf("%w: outcome %d at cell %d", ErrCorruptData, s, i)
		}
	}

	var extra [1]byte
	switch _, err := io.ReadFull(r, extra[:]); {
	case err == nil:
		return nil, fmt.Errorf("%w: trailing bytes after %d-word matrix", ErrCorruptData, n)
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	t, err := newTable(ws, scores)
	if err != nil {
		return nil, err
	}
	copy(t.fingerprint[:], h.Sum(nil))
	return t, nil
}

// readN reads exactly size bytes, growing the buffer as data arrives so a
// bogus header cannot force a large allocation up front.
func readN(r io.Reader, size int64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(min(size, 1<<20)))
	got, err := io.CopyN(&buf, r, size)
	if got == size {
		return buf.Bytes(), nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, err
}

// truncated maps short reads to ErrCorruptData and passes other errors through.
func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorruptData, what)
	}
	return fmt.Errorf("read %s: %w", what, err)
}
