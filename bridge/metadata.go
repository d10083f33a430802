package bridge

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
)

// EncodeMetadata serializes md in the C Data Interface layout:
//
//	int32 number of pairs
//	for each pair:
//	    int32 key length, key bytes
//	    int32 value length, value bytes
//
// Integers are native-endian. An empty mapping encodes to nil, which is
// exported as a NULL metadata pointer.
func EncodeMetadata(md arrow.Metadata) []byte {
	if md.Len() == 0 {
		return nil
	}
	size := 4
	for i := 0; i < md.Len(); i++ {
		size += 8 + len(md.Keys()[i]) + len(md.Values()[i])
	}
	out := make([]byte, 0, size)
	out = binary.NativeEndian.AppendUint32(out, uint32(md.Len()))
	for i := 0; i < md.Len(); i++ {
		k, v := md.Keys()[i], md.Values()[i]
		out = binary.NativeEndian.AppendUint32(out, uint32(len(k)))
		out = append(out, k...)
		out = binary.NativeEndian.AppendUint32(out, uint32(len(v)))
		out = append(out, v...)
	}
	return out
}

// DecodeMetadata parses a buffer produced by EncodeMetadata.
func DecodeMetadata(b []byte) (arrow.Metadata, error) {
	if len(b) == 0 {
		return arrow.Metadata{}, nil
	}
	r := metadataReader{buf: b}
	n, err := r.int32()
	if err != nil {
		return arrow.Metadata{}, err
	}
	if n < 0 {
		return arrow.Metadata{}, fmt.Errorf("%w: negative pair count %d", ErrMalformedMetadata, n)
	}
	keys := make([]string, 0, n)
	vals := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		k, err := r.str()
		if err != nil {
			return arrow.Metadata{}, err
		}
		v, err := r.str()
		if err != nil {
			return arrow.Metadata{}, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return arrow.NewMetadata(keys, vals), nil
}

type metadataReader struct {
	buf []byte
	off int
}

func (r *metadataReader) int32() (int32, error) {
	if len(r.buf)-r.off < 4 {
		return 0, fmt.Errorf("%w: truncated length at offset %d", ErrMalformedMetadata, r.off)
	}
	v := int32(binary.NativeEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

func (r *metadataReader) str() (string, error) {
	n, err := r.int32()
	if err != nil {
		return "", err
	}
	if n < 0 || len(r.buf)-r.off < int(n) {
		return "", fmt.Errorf("%w: bad string length %d at offset %d", ErrMalformedMetadata, n, r.off)
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// metadataSize walks an encoded mapping behind p to find its length. The
// producer guarantees the layout; only the sign of each prefix is checked.
func metadataSize(p unsafe.Pointer) (int, error) {
	read := func(off int) int {
		return int(int32(binary.NativeEndian.Uint32(unsafe.Slice((*byte)(unsafe.Add(p, off)), 4))))
	}
	n := read(0)
	if n < 0 {
		return 0, fmt.Errorf("%w: negative pair count %d", ErrMalformedMetadata, n)
	}
	off := 4
	for i := 0; i < 2*n; i++ {
		l := read(off)
		if l < 0 {
			return 0, fmt.Errorf("%w: negative length %d at offset %d", ErrMalformedMetadata, l, off)
		}
		off += 4 + l
	}
	return off, nil
}

func decodeMetadataPtr(p unsafe.Pointer) (arrow.Metadata, error) {
	if p == nil {
		return arrow.Metadata{}, nil
	}
	n, err := metadataSize(p)
	if err != nil {
		return arrow.Metadata{}, err
	}
	return DecodeMetadata(unsafe.Slice((*byte)(p), n))
}
