package iox

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// WriteNPYFloat64 encodes a 2-D float64 array (rows × cols) as an NPY v1.0
// file.
// No library in the example pack demonstrates a real call against an NPY
// writer (only a bare gonum dependency-manifest name-drop, with no code
// body to ground a call against), so this header encoder is hand-rolled
// against the documented NPY v1.0 format using only encoding/binary and
// bytes.Buffer — the one component in this repo deliberately built on the
// standard library rather than a pack dependency.
func WriteNPYFloat64(rows [][]float64) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("iox: WriteNPYFloat64 requires at least one row")
	}
	cols := len(rows[0])
	for _, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("iox: WriteNPYFloat64 requires uniform row length, got %d and %d", cols, len(row))
		}
	}

	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d), }", len(rows), cols)
	// The full preamble (magic + version + header-length field + header +
	// padding) must be a multiple of 64 bytes, with the header
	// newline-terminated, per the NPY v1.0 spec.
	const preambleFixed = 6 + 2 + 2 // magic, version, header-length field
	total := preambleFixed + len(header) + 1
	pad := (64 - total%64) % 64
	for i := 0; i < pad; i++ {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.WriteByte(1) // major version
	buf.WriteByte(0) // minor version
	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(header))); err != nil {
		return nil, err
	}
	buf.WriteString(header)

	for _, row := range rows {
		for _, v := range row {
			if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}
