package recordlog

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/s2"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/Eignex/kencodex/crc"
	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/wire"
)

// Writer appends framed records to an io.Writer. It is not safe for
// concurrent use.
type Writer struct {
	dst      io.Writer
	s2w      *s2.Writer
	id       ksuid.KSUID
	digest   *crc.Digest
	frame    bytes.Buffer
	count    int
	compress bool
	closed   bool
}

// WriterOption configures a Writer before the stream header is written.
type WriterOption func(*Writer)

// WithCompression wraps the whole stream, header included, in an S2
// compressor.
func WithCompression() WriterOption {
	return func(w *Writer) { w.compress = true }
}

// WithStreamID fixes the stream id instead of generating one.
func WithStreamID(id ksuid.KSUID) WriterOption {
	return func(w *Writer) { w.id = id }
}

// NewWriter writes the stream header to dst and returns a Writer for it.
// The Writer does not buffer on its own; every Append reaches dst (or the
// compressor) before it returns.
func NewWriter(dst io.Writer, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:    dst,
		id:     ksuid.New(),
		digest: crc.New(crc.CRC32IEEE),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.compress {
		w.s2w = s2.NewWriter(dst)
		w.dst = w.s2w
	}

	var hdr bytes.Buffer
	hdr.Write(magic)
	hdr.WriteByte(Version)
	hdr.Write(w.id.Bytes())
	if _, err := w.dst.Write(hdr.Bytes()); err != nil {
		return nil, fmt.Errorf("recordlog: write header: %w", err)
	}

	Logger().Debug("record log opened",
		zap.String("stream", w.id.String()),
		zap.Bool("compressed", w.compress))
	return w, nil
}

// StreamID returns the id written into the stream header.
func (w *Writer) StreamID() ksuid.KSUID {
	return w.id
}

// Append frames payload and writes it to the stream.
func (w *Writer) Append(payload []byte) error {
	if w.closed {
		return ErrClosed
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return errors.New(errors.PhaseLog, errors.KindUnsupported).
			Detail("record of %d bytes exceeds the 32-bit length prefix", len(payload)).
			Build()
	}

	w.frame.Reset()
	wire.PutUvarint32(&w.frame, uint32(len(payload)))
	w.frame.Write(payload)
	w.digest.Reset()
	w.digest.Write(payload)
	wire.PutUint32(&w.frame, w.digest.Sum32())

	if _, err := w.dst.Write(w.frame.Bytes()); err != nil {
		return fmt.Errorf("recordlog: append: %w", err)
	}
	w.count++
	return nil
}

// Flush pushes buffered compressed data to the destination so a reader can
// see every record appended so far. It is a no-op on uncompressed streams
// unless the destination itself is flushable.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.s2w != nil {
		return w.s2w.Flush()
	}
	if f, ok := w.dst.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close finishes the stream. It closes the compressor when one is in use
// but never the destination writer, which the caller owns. Close is
// idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.s2w != nil {
		if err := w.s2w.Close(); err != nil {
			return fmt.Errorf("recordlog: close: %w", err)
		}
	}
	Logger().Debug("record log closed",
		zap.String("stream", w.id.String()),
		zap.Int("records", w.count))
	return nil
}
