package bridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestEncodeMetadataLayout(t *testing.T) {
	md := arrow.NewMetadata([]string{"k"}, []string{"vv"})

	var want []byte
	want = binary.NativeEndian.AppendUint32(want, 1)
	want = binary.NativeEndian.AppendUint32(want, 1)
	want = append(want, 'k')
	want = binary.NativeEndian.AppendUint32(want, 2)
	want = append(want, 'v', 'v')

	if got := EncodeMetadata(md); !bytes.Equal(got, want) {
		t.Fatalf("EncodeMetadata = %v, want %v", got, want)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	md := arrow.NewMetadata(
		[]string{"ARROW:extension:name", "empty", "ключ"},
		[]string{"uuid", "", "значение"},
	)
	got, err := DecodeMetadata(EncodeMetadata(md))
	if err != nil {
		t.Fatalf("DecodeMetadata failed: %v", err)
	}
	if !got.Equal(md) {
		t.Errorf("round trip = %v, want %v", got, md)
	}
}

func TestEmptyMetadata(t *testing.T) {
	if b := EncodeMetadata(arrow.Metadata{}); b != nil {
		t.Errorf("empty metadata encoded to %v, want nil", b)
	}
	md, err := DecodeMetadata(nil)
	if err != nil || md.Len() != 0 {
		t.Errorf("DecodeMetadata(nil) = %v, %v", md, err)
	}
}

func TestDecodeMalformedMetadata(t *testing.T) {
	valid := EncodeMetadata(arrow.NewMetadata([]string{"key"}, []string{"value"}))
	negative := binary.NativeEndian.AppendUint32(nil, 0xffffffff)

	tests := map[string][]byte{
		"short count":     {1, 0},
		"truncated value": valid[:len(valid)-2],
		"missing value":   valid[:4+4+3],
		"negative count":  negative,
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeMetadata(b); !errors.Is(err, ErrMalformedMetadata) {
				t.Errorf("DecodeMetadata = %v, want ErrMalformedMetadata", err)
			}
		})
	}
}

func TestDecodeMetadataPtrNegativeLength(t *testing.T) {
	var b []byte
	b = binary.NativeEndian.AppendUint32(b, 2)
	b = binary.NativeEndian.AppendUint32(b, 1)
	b = append(b, 'k')
	b = binary.NativeEndian.AppendUint32(b, 0xfffffff0)
	b = append(b, make([]byte, 16)...)

	if _, err := decodeMetadataPtr(unsafe.Pointer(&b[0])); !errors.Is(err, ErrMalformedMetadata) {
		t.Errorf("negative value length: %v, want ErrMalformedMetadata", err)
	}

	count := binary.NativeEndian.AppendUint32(nil, 0x80000000)
	if _, err := decodeMetadataPtr(unsafe.Pointer(&count[0])); !errors.Is(err, ErrMalformedMetadata) {
		t.Errorf("negative pair count: %v, want ErrMalformedMetadata", err)
	}

	valid := EncodeMetadata(arrow.NewMetadata([]string{"key"}, []string{"value"}))
	md, err := decodeMetadataPtr(unsafe.Pointer(&valid[0]))
	if err != nil || md.FindKey("key") != 0 {
		t.Errorf("decodeMetadataPtr(valid) = %v, %v", md, err)
	}
}
