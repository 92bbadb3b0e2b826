package memory

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/joshuapare/memkit/pkg/types"
)

// wideEncoding returns the wchar_t encoding of the memory's platform:
// UTF-16 where wchar_t is 2 bytes, UTF-32 where it is 4.
func (m *Memory) wideEncoding() (encoding.Encoding, int) {
	ts := m.TypeSystem()
	big := ts.Endian() == types.EndianBig
	if ts.WideCharSize() == 2 {
		order := unicode.LittleEndian
		if big {
			order = unicode.BigEndian
		}
		return unicode.UTF16(order, unicode.IgnoreBOM), 2
	}
	order := utf32.LittleEndian
	if big {
		order = utf32.BigEndian
	}
	return utf32.UTF32(order, utf32.IgnoreBOM), 4
}

// GetWideString reads a NUL-terminated wchar_t string at off. A positive
// max bounds the read to max characters.
func (m *Memory) GetWideString(off, max int) (string, error) {
	enc, unit := m.wideEncoding()
	size := m.Size()
	if off < 0 || off+unit > size {
		return "", types.OutOfBounds(off, unit, size)
	}
	end := off + (size-off)/unit*unit
	if max > 0 {
		if off+max*unit > size {
			return "", types.OutOfBounds(off, max*unit, size)
		}
		end = off + max*unit
	}
	raw, err := m.data.Slice(off, end-off)
	if err != nil {
		return "", err
	}
	for i := 0; i+unit <= len(raw); i += unit {
		if isZero(raw[i : i+unit]) {
			raw = raw[:i]
			break
		}
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PutWideString writes s as wchar_t characters followed by a NUL character.
func (m *Memory) PutWideString(off int, s string) error {
	enc, unit := m.wideEncoding()
	raw, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}
	raw = append(raw, make([]byte, unit)...)
	return m.data.Write(off, raw)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
