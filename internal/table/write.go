package table

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// WriteTo encodes t in the load format.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	hdr := make([]byte, 4+4*len(t.words))
	binary.LittleEndian.PutUint32(hdr, uint32(len(t.words)))
	for i, id := range t.words {
		binary.LittleEndian.PutUint32(hdr[4+4*i:], uint32(id))
	}
	if _, err := cw.Write(hdr); err != nil {
		return cw.n, err
	}
	_, err := cw.Write(t.scores)
	return cw.n, err
}

// WriteFile writes t to path, replacing any existing file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 1<<20)
	if _, err := t.WriteTo(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
