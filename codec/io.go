// Package codec serialises a built catalogue, transit router and render
// settings to a compact binary stream and reconstructs them without
// rerunning the shortest-path precomputation. The wire helpers below use
// the usual length-prefixed encoding/binary idiom: a size-prefixed
// repeated section for every variable-length value.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer { return &writer{} }

func (w *writer) bytes() []byte { return w.buf.Bytes() }

func (w *writer) writeUint8(v uint8) { w.buf.WriteByte(v) }

func (w *writer) writeUint32(v uint32) {
	binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) writeInt32(v int32) {
	binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) writeFloat64(v float64) {
	binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) writeBool(v bool) {
	if v {
		w.writeUint8(1)
	} else {
		w.writeUint8(0)
	}
}

func (w *writer) writeString(s string) {
	w.writeUint32(uint32(len(s)))
	w.buf.WriteString(s)
}

type reader struct {
	buf *bytes.Reader
}

func newReader(data []byte) *reader { return &reader{buf: bytes.NewReader(data)} }

func (r *reader) readUint8() (uint8, error) {
	return r.buf.ReadByte()
}

func (r *reader) readUint32() (uint32, error) {
	var v uint32
	err := binary.Read(r.buf, binary.LittleEndian, &v)
	return v, err
}

func (r *reader) readInt32() (int32, error) {
	var v int32
	err := binary.Read(r.buf, binary.LittleEndian, &v)
	return v, err
}

func (r *reader) readFloat64() (float64, error) {
	var v float64
	err := binary.Read(r.buf, binary.LittleEndian, &v)
	return v, err
}

func (r *reader) readBool() (bool, error) {
	v, err := r.readUint8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *reader) readString() (string, error) {
	n, err := r.readUint32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := r.buf.Read(buf); err != nil {
		return "", fmt.Errorf("codec: reading string of length %d: %w", n, err)
	}
	return string(buf), nil
}
