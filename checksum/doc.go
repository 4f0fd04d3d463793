// Package checksum implements the two byte-at-a-time CRC engines used by
// the bootloader's framing layer.
//
// # Engines
//
// CRC8 implements CRC-8 CCITT (polynomial 0x07, init 0x00, no reflection,
// no final XOR), used by the two-wire frame format. A two-wire frame is
// valid iff CRC8 computed over the entire frame (including the trailing
// CRC byte) returns zero.
//
// CRC16 implements CRC-16 IBM (polynomial 0x8005 reflected as 0xA001,
// init 0x0000, reflected input/output), used by the multi-drop frame
// format. The result is transmitted little-endian on the wire.
//
// Both engines are pure functions of the byte sequence fed to them; they
// carry no state beyond the running CRC register, so a zero-value CRC8
// or CRC16 is ready to use.
//
//	var c checksum.CRC8
//	c.UpdateBytes(frame)
//	if c.Get() != 0 {
//	    // corrupt frame
//	}
package checksum
