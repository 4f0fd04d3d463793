package image

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/3devo/tevoboot/checksum"
)

// Field widths, in hex characters, of a row line:
// array ID (1 byte) + address (2 bytes) + data length (1 byte) + data + CRC-8 (1 byte).
const (
	headerHexLen    = 12
	rowHeaderHexLen = 8 // arrayID + address + dataLen, before the variable-length data
	rowChecksumLen  = 2
	rowMinHexLen    = rowHeaderHexLen + rowChecksumLen
)

// Parse reads a firmware image from the file at path.
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseReader(f)
}

// ParseReader reads a firmware image from r, one line per header/row,
// each line hex-encoded exactly as Parse expects on disk.
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("image: reading header: %w", err)
		}
		return nil, fmt.Errorf("image: empty file")
	}

	img, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("image: header: %w", err)
	}

	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		row, err := parseRow(text)
		if err != nil {
			return nil, fmt.Errorf("image: line %d: %w", line, err)
		}
		img.Rows = append(img.Rows, *row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("image: reading rows: %w", err)
	}
	if len(img.Rows) == 0 {
		return nil, fmt.Errorf("image: no rows found")
	}

	return img, nil
}

func parseHeader(line string) (*Image, error) {
	if len(line) != headerHexLen {
		return nil, fmt.Errorf("header must be %d hex characters, got %d", headerHexLen, len(line))
	}
	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}

	return &Image{
		SiliconID:  uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3]),
		SiliconRev: raw[4],
		// raw[5] names the checksum algorithm; this format always uses
		// CRC-8, so it's read but not branched on.
	}, nil
}

func parseRow(line string) (*Row, error) {
	if len(line) < rowMinHexLen {
		return nil, fmt.Errorf("row too short: %d hex characters, need at least %d", len(line), rowMinHexLen)
	}
	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("row too short after decoding")
	}

	arrayID := raw[0]
	address := uint16(raw[1])<<8 | uint16(raw[2])
	dataLen := int(raw[3])

	want := 4 + dataLen + 1
	if len(raw) != want {
		return nil, fmt.Errorf("row declares %d data bytes but has %d bytes total, want %d", dataLen, len(raw), want)
	}

	data := raw[4 : 4+dataLen]
	gotCRC := raw[4+dataLen]

	var c checksum.CRC8
	c.UpdateBytes(raw[:4+dataLen])
	if c.Get() != gotCRC {
		return nil, fmt.Errorf("checksum mismatch: computed 0x%02x, row has 0x%02x", c.Get(), gotCRC)
	}

	return &Row{ArrayID: arrayID, Address: address, Data: append([]byte{}, data...)}, nil
}
