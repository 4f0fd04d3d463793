package checksum

import "testing"

func TestCRC16ZeroInputIsZero(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x00, 0x00},
	}

	for _, data := range tests {
		var c CRC16
		c.UpdateBytes(data)
		if got := c.Get(); got != 0 {
			t.Errorf("CRC16(%v) = 0x%04X, want 0x0000", data, got)
		}
	}
}

func TestCRC16RoundTrip(t *testing.T) {
	// The multi-drop framer transmits the CRC little-endian (low byte
	// first); appending it in that order and recomputing must land on
	// zero.
	frames := [][]byte{
		{0x42, 0x00},
		{0x42, 0x00, 0x00, 0x00},
		{0x01, 0x06, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04},
	}

	for _, frame := range frames {
		var c CRC16
		c.UpdateBytes(frame)
		crc := c.Get()

		full := append(append([]byte{}, frame...), byte(crc), byte(crc>>8))
		var check CRC16
		check.UpdateBytes(full)
		if got := check.Get(); got != 0 {
			t.Errorf("CRC16 round trip for %v: appended-CRC checksum = 0x%04X, want 0x0000", frame, got)
		}
	}
}

func TestCRC16ByteByByteMatchesBulk(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0xff, 0x80, 0x7f}

	var bulk CRC16
	bulk.UpdateBytes(data)

	var stepwise CRC16
	for _, b := range data {
		stepwise.Update(b)
	}

	if bulk.Get() != stepwise.Get() {
		t.Errorf("byte-by-byte CRC16 = 0x%04X, bulk = 0x%04X", stepwise.Get(), bulk.Get())
	}
}

func TestCRC16Reset(t *testing.T) {
	var c CRC16
	c.UpdateBytes([]byte{0x12, 0x34})
	c.Reset()
	if got := c.Get(); got != 0 {
		t.Errorf("CRC16.Get() after Reset() = 0x%04X, want 0x0000", got)
	}
}

func BenchmarkCRC16(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var c CRC16
		c.UpdateBytes(data)
	}
}
