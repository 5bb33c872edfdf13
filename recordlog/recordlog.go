// Package recordlog stores already-encoded records as an append-only
// framed stream.
//
// A stream starts with a fixed header: the 4-byte magic "KLOG", a format
// version byte, and a 20-byte KSUID identifying the stream. Each record
// follows as
//
//	uvarint(len(payload)) || payload || CRC-32 of payload (big-endian)
//
// The whole stream, header included, may optionally be S2-compressed; the
// reader detects compression by the S2 stream marker and decompresses
// transparently. Offsets reported in errors refer to the decompressed
// byte stream.
package recordlog

import "errors"

// Version is the stream format version this package writes.
const Version = 0x1

const headerLen = 25

var magic = []byte("KLOG")

// ErrClosed is returned by operations on a closed Writer.
var ErrClosed = errors.New("recordlog: closed")
