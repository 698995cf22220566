package leadfile

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Byte order marks recognized at the start of uploaded text files.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 detects the text encoding of data from its BOM, strips the
// BOM, and returns UTF-8 bytes plus the detected encoding name. Input without
// a BOM is passed through unchanged and treated as UTF-8: real-world CSV
// exports are either plain UTF-8 or BOM-prefixed (Excel emits both).
func decodeToUTF8(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], "utf-8-bom", nil
	}
	if bytes.HasPrefix(data, bomUTF16LE) {
		out, err := decodeUTF16(data[len(bomUTF16LE):], unicode.LittleEndian)
		if err != nil {
			return nil, "", fmt.Errorf("utf-16le decode: %w", err)
		}
		return out, "utf-16le", nil
	}
	if bytes.HasPrefix(data, bomUTF16BE) {
		out, err := decodeUTF16(data[len(bomUTF16BE):], unicode.BigEndian)
		if err != nil {
			return nil, "", fmt.Errorf("utf-16be decode: %w", err)
		}
		return out, "utf-16be", nil
	}
	return data, "utf-8", nil
}

// decodeUTF16 converts BOM-stripped UTF-16 bytes of the given endianness to
// UTF-8.
func decodeUTF16(data []byte, endian unicode.Endianness) ([]byte, error) {
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	return out, err
}
