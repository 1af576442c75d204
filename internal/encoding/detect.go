package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. Accept EUC-KR (CP949) when every high byte forms a valid pair
//  4. Heuristic detection via chardet, falling back to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek enough bytes for BOM detection and charset heuristics.
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	// 1. Check for BOM.
	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	// 2. If the content is valid UTF-8, return as-is.
	if validUTF8Prefix(buf) {
		return br, nil
	}

	// 3. Korean spreadsheet exports are the common non-UTF-8 case. chardet
	// labels short EUC-KR samples as Latin-1, so check the byte structure first.
	if validEUCKR(buf) {
		return transform.NewReader(br, korean.EUCKR.NewDecoder()), nil
	}

	// 4. Heuristic detection via chardet.
	detector := chardet.NewTextDetector()

	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil && result.Charset == "UTF-8" {
		return br, nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// validEUCKR reports whether every non-ASCII byte of buf belongs to a CP949
// two-byte sequence that decodes to a defined character. A lead byte cut off
// by the peek window is tolerated.
func validEUCKR(buf []byte) bool {
	end := 0

	for end < len(buf) {
		b := buf[end]
		if b < 0x80 {
			end++
			continue
		}

		if b == 0x80 || b == 0xFF {
			return false
		}

		if end+1 == len(buf) {
			break
		}

		if !euckrTrail(b, buf[end+1]) {
			return false
		}

		end += 2
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(buf[:end])
	if err != nil {
		return false
	}

	return !bytes.ContainsRune(decoded, utf8.RuneError)
}

func euckrTrail(lead, trail byte) bool {
	if trail >= 0xA1 && trail <= 0xFE {
		return true
	}

	// CP949 extension: leads up to 0xC6 also take Latin letters and 0x81-0xA0.
	if lead > 0xC6 {
		return false
	}

	return (trail >= 0x41 && trail <= 0x5A) ||
		(trail >= 0x61 && trail <= 0x7A) ||
		(trail >= 0x81 && trail <= 0xA0)
}

// validUTF8Prefix reports whether buf is valid UTF-8, tolerating a multi-byte
// sequence cut off by the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) && !utf8.FullRune(buf[len(buf)-cut:]) {
			return true
		}
	}

	return false
}
