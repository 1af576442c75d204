package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/student-spending/spendboard/internal/encoding"
)

const koreanCSV = "date,time,merchant,memo,amount_krw,payment_type,city,channel\n" +
	"2024-01-05,09:30,스타벅스 강남점,아이스 아메리카노 두 잔,9000,credit_card,서울,offline\n" +
	"2024-01-05,12:10,김밥천국 신촌점,점심 식사,6500,debit_card,서울,offline\n" +
	"2024-01-06,08:05,지하철,등교,1450,transport_card,서울,offline\n"

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Hangul should pass through unchanged.
	assert.Equal(t, koreanCSV, readAll(t, []byte(koreanCSV)))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(koreanCSV)...)
	assert.Equal(t, koreanCSV, readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := encoder.Bytes([]byte(koreanCSV))
	require.NoError(t, err)

	assert.Equal(t, koreanCSV, readAll(t, input))
}

func TestNewUTF8Reader_EUCKR(t *testing.T) {
	input, err := korean.EUCKR.NewEncoder().Bytes([]byte(koreanCSV))
	require.NoError(t, err)

	assert.Equal(t, koreanCSV, readAll(t, input))
}

func TestNewUTF8Reader_LongUTF8(t *testing.T) {
	// Multi-byte runes straddling the 4096-byte peek window must not trigger re-decoding.
	input := strings.Repeat("가", 3000)
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", readAll(t, nil))
}

func TestNewUTF8Reader_EUCKR_SingleRow(t *testing.T) {
	input := "date,time,merchant,memo,amount_krw,payment_type,city,channel\n" +
		"2024-01-06,08:05,지하철,등교,1450,transport_card,서울,offline\n"

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, input, readAll(t, encoded))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	input := "merchant,memo\nCafé Olé,crème brûlée\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, input, readAll(t, encoded))
}
