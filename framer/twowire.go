package framer

import (
	"github.com/3devo/tevoboot/checksum"
	"github.com/3devo/tevoboot/protocol"
)

// Dispatcher is the command state machine both framer variants share.
// dispatch.Dispatcher satisfies this.
type Dispatcher interface {
	ProcessCommand(cmd byte, argin []byte, argout []byte) protocol.CmdResult
}

// TwoWireFramer is the per-transfer entry point for a two-wire
// (I2C-style) bus driver. The device's own address is matched by the
// bus driver before HandleTransfer is ever called; address 0 here
// always means a general call.
type TwoWireFramer struct {
	dispatcher Dispatcher
	cfg        Config
}

// NewTwoWireFramer constructs a TwoWireFramer.
func NewTwoWireFramer(dispatcher Dispatcher, cfg Config) *TwoWireFramer {
	return &TwoWireFramer{dispatcher: dispatcher, cfg: cfg}
}

// HandleTransfer validates, dispatches, and replies to one transfer.
// buf holds the bytes received and is reused in place for the reply;
// length is how many of them are valid, maxLen is buf's total
// capacity. The returned length is how many bytes of buf to transmit;
// 0 means send nothing.
func (f *TwoWireFramer) HandleTransfer(address byte, buf []byte, length int, maxLen int) int {
	if address == 0 {
		handleGeneralCall(buf[:length], f.cfg)
		return 0
	}

	// Room for status, length, and a trailing CRC byte.
	if maxLen < 3 {
		return 0
	}

	var res protocol.CmdResult
	if length < 2 {
		res = protocol.CmdResult{Status: protocol.InvalidTransfer}
	} else {
		var crc checksum.CRC8
		crc.UpdateBytes(buf[:length])
		if crc.Get() != 0 {
			res = protocol.CmdResult{Status: protocol.InvalidCRC}
		} else {
			// buf[length-1] is the incoming CRC; argin runs up to it.
			res = f.dispatcher.ProcessCommand(buf[0], buf[1:length-1], buf[2:maxLen-1])
			if res.Status == protocol.NoReply {
				return 0
			}
		}
	}

	buf[0] = byte(res.Status)
	buf[1] = res.Len
	replyLen := 2 + int(res.Len)

	var crc checksum.CRC8
	crc.UpdateBytes(buf[:replyLen])
	buf[replyLen] = crc.Get()

	return replyLen + 1
}
