// Package image parses a host-side firmware image into the row
// sequence a bootloader upload streams as WRITE_FLASH commands.
//
// The on-disk format is line-oriented and hex-encoded, in the same
// shape as a .cyacd file: a 12-hex-character header (silicon ID,
// silicon revision) followed by one line per flash row (array ID,
// address, data, and a trailing CRC-8 checksum computed with the
// checksum package's engine, over row header and data). Parse and
// ParseReader hex-decode each line before validating it.
package image
