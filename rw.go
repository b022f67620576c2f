package easysh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// big-endian, so encoded integers sort lexicographically as store keys
var byteOrder = binary.BigEndian

type integer interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64
}

func ReadInteger[T integer](r io.Reader, pval *T) error {
	return binary.Read(r, byteOrder, pval)
}

func WriteInteger[T integer](w io.Writer, val T) error {
	return binary.Write(w, byteOrder, val)
}

func EncodeInteger[T integer](v T) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func DecodeInteger[T integer](data []byte) T {
	var ret T
	if err := binary.Read(bytes.NewReader(data), byteOrder, &ret); err != nil {
		panic(err)
	}
	return ret
}

// ReadBytes16 reads a byte string prefixed with its uint16 length.
func ReadBytes16(r io.Reader) ([]byte, error) {
	var length uint16
	if err := ReadInteger(r, &length); err != nil {
		return nil, err
	}
	if length == 0 {
		return []byte{}, nil
	}
	ret := make([]byte, length)
	if _, err := io.ReadFull(r, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func WriteBytes16(w io.Writer, data []byte) error {
	if len(data) > math.MaxUint16 {
		panic(fmt.Sprintf("WriteBytes16: too long data (%v)", len(data)))
	}
	if err := WriteInteger(w, uint16(len(data))); err != nil {
		return err
	}
	if len(data) != 0 {
		_, err := w.Write(data)
		return err
	}
	return nil
}
