package recordlog

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/Eignex/kencodex/crc"
	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/wire"
)

// DefaultMaxRecordSize caps how large a record Next will allocate for.
const DefaultMaxRecordSize = 64 << 20

// s2StreamMarker is the first byte of an S2/Snappy framed stream; the log
// header starts with 'K', so one byte distinguishes the two.
const s2StreamMarker = 0xFF

// Reader iterates over the records of a stream written by Writer. It is
// not safe for concurrent use.
type Reader struct {
	br     *bufio.Reader
	id     ksuid.KSUID
	digest *crc.Digest
	max    int
	off    int64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxRecordSize overrides DefaultMaxRecordSize. Length prefixes above
// the cap fail as malformed input instead of being allocated.
func WithMaxRecordSize(n int) ReaderOption {
	return func(r *Reader) { r.max = n }
}

// NewReader validates the stream header of src and returns a Reader
// positioned at the first record. Compressed streams are detected and
// unwrapped transparently.
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		br:     bufio.NewReader(src),
		digest: crc.New(crc.CRC32IEEE),
		max:    DefaultMaxRecordSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	head, err := r.br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return nil, errors.UnexpectedEOF(errors.PhaseLog, 0, headerLen, 0)
		}
		return nil, fmt.Errorf("recordlog: probe stream: %w", err)
	}
	if head[0] == s2StreamMarker {
		r.br = bufio.NewReader(s2.NewReader(r.br))
	}

	var hdr [headerLen]byte
	if n, err := io.ReadFull(r.br, hdr[:]); err != nil {
		return nil, errors.UnexpectedEOF(errors.PhaseLog, 0, headerLen, n)
	}
	if !bytes.Equal(hdr[:4], magic) {
		return nil, errors.BadMagic(hdr[:4])
	}
	if hdr[4] != Version {
		return nil, errors.BadVersion(hdr[4])
	}
	id, err := ksuid.FromBytes(hdr[5:])
	if err != nil {
		return nil, fmt.Errorf("recordlog: stream id: %w", err)
	}
	r.id = id
	r.off = headerLen

	Logger().Debug("record log opened for reading",
		zap.String("stream", id.String()))
	return r, nil
}

// StreamID returns the id from the stream header.
func (r *Reader) StreamID() ksuid.KSUID {
	return r.id
}

// Next returns the payload of the next record. It returns io.EOF when the
// stream ends cleanly on a record boundary; anything else that cuts a
// record short is malformed input.
func (r *Reader) Next() ([]byte, error) {
	recStart := r.off

	length, n, err := r.readUvarint()
	if err != nil {
		return nil, err
	}
	r.off += int64(n)

	if int(length) < 0 || int(length) > r.max {
		return nil, errors.LengthOutOfRange(errors.PhaseLog, int(recStart), int(length), r.max)
	}
	payload := make([]byte, length)
	if m, err := io.ReadFull(r.br, payload); err != nil {
		return nil, errors.UnexpectedEOF(errors.PhaseLog, int(r.off), int(length), m)
	}
	r.off += int64(length)

	var sum [4]byte
	if m, err := io.ReadFull(r.br, sum[:]); err != nil {
		return nil, errors.UnexpectedEOF(errors.PhaseLog, int(r.off), 4, m)
	}
	r.off += 4

	want := binary.BigEndian.Uint32(sum[:])
	r.digest.Reset()
	r.digest.Write(payload)
	if got := r.digest.Sum32(); got != want {
		return nil, errors.ChecksumMismatch(int(recStart), want, got)
	}
	return payload, nil
}

// readUvarint reads a record length from the stream with the same rules as
// wire.Uvarint32. io.EOF before the first byte is the clean end of the
// stream and passes through untouched.
func (r *Reader) readUvarint() (uint32, int, error) {
	var v uint32
	var shift uint
	n := 0
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				if n == 0 {
					return 0, 0, io.EOF
				}
				return 0, 0, errors.UnexpectedEOF(errors.PhaseLog, int(r.off)+n, 1, 0)
			}
			return 0, 0, fmt.Errorf("recordlog: read length: %w", err)
		}
		n++
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, n, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, 0, errors.Overflow(errors.PhaseLog, int(r.off), wire.MaxVarint32Len)
		}
	}
}
