package framer

import (
	"testing"

	"github.com/3devo/tevoboot/checksum"
	"github.com/3devo/tevoboot/protocol"
)

// fakeDispatcher lets tests control ProcessCommand's result without
// building a real flash.SelfProgrammer.
type fakeDispatcher struct {
	result protocol.CmdResult
	reply  []byte

	gotCmd   byte
	gotArgin []byte
}

func (f *fakeDispatcher) ProcessCommand(cmd byte, argin []byte, argout []byte) protocol.CmdResult {
	f.gotCmd = cmd
	f.gotArgin = append([]byte{}, argin...)
	copy(argout, f.reply)
	return f.result
}

func crc8Frame(payload []byte) []byte {
	var c checksum.CRC8
	c.UpdateBytes(payload)
	return append(append([]byte{}, payload...), c.Get())
}

func TestTwoWireGeneralCallNeverReplies(t *testing.T) {
	f := NewTwoWireFramer(&fakeDispatcher{}, Config{})
	buf := []byte{0x00, 0, 0, 0, 0}
	if got := f.HandleTransfer(0, buf, 1, len(buf)); got != 0 {
		t.Errorf("HandleTransfer(general call) = %d, want 0", got)
	}
}

func TestTwoWireMaxLenTooSmall(t *testing.T) {
	f := NewTwoWireFramer(&fakeDispatcher{}, Config{})
	buf := []byte{0x00, 0x00}
	if got := f.HandleTransfer(0x42, buf, 2, len(buf)); got != 0 {
		t.Errorf("HandleTransfer(maxLen=2) = %d, want 0", got)
	}
}

func TestTwoWireInvalidTransferTooShort(t *testing.T) {
	f := NewTwoWireFramer(&fakeDispatcher{}, Config{})
	buf := make([]byte, 8)
	buf[0] = 0x00
	got := f.HandleTransfer(0x42, buf, 1, len(buf))
	if got == 0 {
		t.Fatal("HandleTransfer returned 0, want a reply for INVALID_TRANSFER")
	}
	if protocol.Status(buf[0]) != protocol.InvalidTransfer {
		t.Errorf("status = %v, want InvalidTransfer", protocol.Status(buf[0]))
	}
}

func TestTwoWireBadCRC(t *testing.T) {
	f := NewTwoWireFramer(&fakeDispatcher{}, Config{})

	frame := crc8Frame([]byte{0x05})
	frame[len(frame)-1] ^= 0xff // guaranteed to no longer self-check to zero

	buf := make([]byte, 8)
	copy(buf, frame)

	got := f.HandleTransfer(0x42, buf, len(frame), len(buf))
	if got == 0 {
		t.Fatal("HandleTransfer returned 0, want a reply for INVALID_CRC")
	}
	if protocol.Status(buf[0]) != protocol.InvalidCRC {
		t.Errorf("status = %v, want InvalidCRC", protocol.Status(buf[0]))
	}
}

func TestTwoWireValidRequestDispatchesAndReplies(t *testing.T) {
	disp := &fakeDispatcher{
		result: protocol.CmdResult{Status: protocol.OK, Len: 2},
		reply:  []byte{0x01, 0x00},
	}
	f := NewTwoWireFramer(disp, Config{})

	frame := crc8Frame([]byte{0x00}) // cmd=GET_PROTOCOL_VERSION, no args
	buf := make([]byte, 8)
	copy(buf, frame)

	got := f.HandleTransfer(0x42, buf, len(frame), len(buf))
	if got != 5 { // status + len + 2 reply bytes + crc
		t.Fatalf("HandleTransfer returned %d, want 5", got)
	}
	if protocol.Status(buf[0]) != protocol.OK || buf[1] != 2 {
		t.Fatalf("reply header = [%v %d], want [OK 2]", protocol.Status(buf[0]), buf[1])
	}

	var check checksum.CRC8
	check.UpdateBytes(buf[:got])
	if check.Get() != 0 {
		t.Errorf("reply CRC-8 self-check = 0x%02x, want 0x00", check.Get())
	}
}

func TestTwoWireNoReplySuppressesTransmission(t *testing.T) {
	disp := &fakeDispatcher{result: protocol.CmdResult{Status: protocol.NoReply}}
	f := NewTwoWireFramer(disp, Config{})

	frame := crc8Frame([]byte{0x01}) // e.g. SET_I2C_ADDRESS to a different hw type
	buf := make([]byte, 8)
	copy(buf, frame)

	if got := f.HandleTransfer(0x42, buf, len(frame), len(buf)); got != 0 {
		t.Errorf("HandleTransfer(NoReply) = %d, want 0", got)
	}
}

func TestTwoWireGeneralCallResetAddressInvokesCallback(t *testing.T) {
	called := false
	f := NewTwoWireFramer(&fakeDispatcher{}, Config{ResetBusAddress: func() { called = true }})

	buf := []byte{byte(protocol.ResetAddress)}
	f.HandleTransfer(0, buf, len(buf), len(buf))
	if !called {
		t.Error("ResetBusAddress was not invoked for a RESET_ADDRESS general call")
	}
}
