package anyio

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	// RFC 1952, Section 2.3.1
	gzipMagic = []byte{0x1f, 0x8b}
	// RFC 8878, Section 3.1.1
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	// LZ4 frame format, Section 2
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Decompress returns a reader that decompresses r if it begins with a
// gzip, zstd, or LZ4 frame magic number and reads r unchanged otherwise.
// The returned closer releases decoder resources but does not close r.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(br)
	case bytes.HasPrefix(head, zstdMagic):
		d, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case bytes.HasPrefix(head, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), nil
	}
	return io.NopCloser(br), nil
}
