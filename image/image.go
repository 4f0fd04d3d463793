package image

// Image is a parsed firmware image ready to be streamed to a device
// through WRITE_FLASH and FINALIZE_FLASH commands.
type Image struct {
	// SiliconID and SiliconRev identify the target device family, read
	// from the image header. Nothing in this module enforces that they
	// match the device being flashed; that's a decision the caller
	// wiring this into a host tool makes.
	SiliconID  uint32
	SiliconRev byte

	Rows []Row
}

// Row is one contiguous run of flash bytes to be written starting at
// Address, corresponding to one WRITE_FLASH payload.
type Row struct {
	ArrayID byte
	Address uint16
	Data    []byte
}
