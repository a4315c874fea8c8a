package marshal

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding names the text representation used to interpret a string
// argument as bytes. Raw mandates an already-constructed byte buffer.
type Encoding uint8

const (
	Raw Encoding = iota
	UTF8
	ASCII
	Latin1
	Hex
	Base64
	UTF16LE
)

// String returns the canonical configuration name for the encoding.
func (e Encoding) String() string {
	switch e {
	case Raw:
		return "buffer"
	case UTF8:
		return "utf8"
	case ASCII:
		return "ascii"
	case Latin1:
		return "binary"
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	case UTF16LE:
		return "ucs2"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// ParseEncoding resolves a configuration name to an Encoding. It accepts
// the aliases the original host runtime accepts.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "buffer":
		return Raw, nil
	case "utf8", "utf-8":
		return UTF8, nil
	case "ascii":
		return ASCII, nil
	case "binary", "latin1":
		return Latin1, nil
	case "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	case "ucs2", "ucs-2", "utf16le", "utf-16le":
		return UTF16LE, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", name)
	}
}

// DecodedLen predicts how many bytes decoding s under e will produce.
func DecodedLen(s string, e Encoding) (int, error) {
	switch e {
	case UTF8:
		return len(s), nil
	case ASCII, Latin1:
		return utf8.RuneCountInString(s), nil
	case Hex:
		return hex.DecodedLen(len(s)), nil
	case Base64:
		return base64.RawStdEncoding.DecodedLen(len(trimBase64Padding(s))), nil
	case UTF16LE:
		// Counted directly so prediction allocates nothing; the owned
		// output buffer stays the only allocation marshaling makes.
		n := 0
		for _, r := range s {
			if r > 0xFFFF {
				n += 4
			} else {
				n += 2
			}
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot decode text as %s", e)
	}
}

// DecodeInto writes the decoded bytes of s into dst and reports how many
// bytes it wrote. dst must be at least DecodedLen bytes long.
func DecodeInto(dst []byte, s string, e Encoding) (int, error) {
	switch e {
	case UTF8:
		return copy(dst, s), nil
	case ASCII:
		n := 0
		for _, r := range s {
			dst[n] = byte(r & 0x7F)
			n++
		}
		return n, nil
	case Latin1:
		n := 0
		for _, r := range s {
			dst[n] = byte(r)
			n++
		}
		return n, nil
	case Hex:
		return hex.Decode(dst, []byte(s))
	case Base64:
		return base64.RawStdEncoding.Decode(dst, []byte(trimBase64Padding(s)))
	case UTF16LE:
		n := 0
		for _, r := range s {
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				binary.LittleEndian.PutUint16(dst[n:], uint16(hi))
				binary.LittleEndian.PutUint16(dst[n+2:], uint16(lo))
				n += 4
			} else {
				binary.LittleEndian.PutUint16(dst[n:], uint16(r))
				n += 2
			}
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot decode text as %s", e)
	}
}

// trimBase64Padding accepts both padded and unpadded base64 input.
func trimBase64Padding(s string) string {
	return strings.TrimRight(s, "=")
}
