package image

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/3devo/tevoboot/checksum"
)

func encodeHeader(siliconID uint32, siliconRev byte) string {
	raw := []byte{
		byte(siliconID >> 24), byte(siliconID >> 16), byte(siliconID >> 8), byte(siliconID),
		siliconRev,
		0x01, // checksum type, unused by this parser
	}
	return hex.EncodeToString(raw)
}

func encodeRow(arrayID byte, address uint16, data []byte) string {
	raw := append([]byte{arrayID, byte(address >> 8), byte(address)}, byte(len(data)))
	raw = append(raw, data...)

	var c checksum.CRC8
	c.UpdateBytes(raw)
	raw = append(raw, c.Get())

	return hex.EncodeToString(raw)
}

func TestParseReaderRoundTrip(t *testing.T) {
	lines := []string{
		encodeHeader(0x01020304, 0x01),
		encodeRow(0, 0x0000, []byte{0x01, 0x02, 0x03, 0x04}),
		encodeRow(0, 0x0040, []byte{0x0a, 0x0b}),
	}
	img, err := ParseReader(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	if img.SiliconID != 0x01020304 || img.SiliconRev != 0x01 {
		t.Errorf("header = {0x%08x, 0x%02x}, want {0x01020304, 0x01}", img.SiliconID, img.SiliconRev)
	}
	if len(img.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(img.Rows))
	}
	if img.Rows[0].Address != 0x0000 || len(img.Rows[0].Data) != 4 {
		t.Errorf("Rows[0] = %+v, want Address 0 with 4 data bytes", img.Rows[0])
	}
	if img.Rows[1].Address != 0x0040 || len(img.Rows[1].Data) != 2 {
		t.Errorf("Rows[1] = %+v, want Address 0x40 with 2 data bytes", img.Rows[1])
	}
}

func TestParseReaderRejectsCorruptChecksum(t *testing.T) {
	row := encodeRow(0, 0x0000, []byte{0x01, 0x02})
	corrupt := row[:len(row)-2] + "ff"
	// Guard against the astronomically unlikely case the real checksum is 0xff too.
	if corrupt == row {
		corrupt = row[:len(row)-2] + "00"
	}

	lines := []string{encodeHeader(1, 1), corrupt}
	_, err := ParseReader(strings.NewReader(strings.Join(lines, "\n")))
	if err == nil {
		t.Fatal("ParseReader() error = nil, want a checksum error")
	}
}

func TestParseReaderRejectsEmptyFile(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""))
	if err == nil {
		t.Fatal("ParseReader(empty) error = nil, want an error")
	}
}

func TestParseReaderSkipsBlankLines(t *testing.T) {
	lines := []string{
		encodeHeader(1, 1),
		"",
		encodeRow(0, 0, []byte{0x01}),
		"",
	}
	img, err := ParseReader(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(img.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(img.Rows))
	}
}
