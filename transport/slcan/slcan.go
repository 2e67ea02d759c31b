// Package slcan speaks the LAWICEL ASCII "SLCAN" protocol used by most
// USB-CAN adapters (CANUSB, CANable running slcan firmware, and similar) to
// carry CAN frames over a serial line.
package slcan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goburrow/serial"
)

// Frame is a single raw CAN frame.
type Frame struct {
	ArbitrationID uint32
	Extended      bool
	Data          []byte
}

// bitrateCodes maps a nominal CAN bitrate to the SLCAN "Sn" command that
// selects it.
var bitrateCodes = map[int]byte{
	10000:   '0',
	20000:   '1',
	50000:   '2',
	100000:  '3',
	125000:  '4',
	250000:  '5',
	500000:  '6',
	800000:  '7',
	1000000: '8',
}

// Config describes the serial port and CAN bitrate to open.
type Config struct {
	Device   string
	BaudRate int
	Bitrate  int
}

// Transport drives an SLCAN adapter: a serial port presenting a line-based
// command protocol rather than a raw CAN controller interface.
type Transport struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
}

// Open configures and opens an SLCAN adapter at cfg.Device, sets its CAN
// bitrate, and opens the channel so frames start flowing.
func Open(cfg Config) (*Transport, error) {
	code, ok := bitrateCodes[cfg.Bitrate]
	if !ok {
		return nil, fmt.Errorf("slcan: unsupported bitrate %d", cfg.Bitrate)
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	})
	if err != nil {
		return nil, fmt.Errorf("slcan: opening %s: %w", cfg.Device, err)
	}

	t := &Transport{port: port, reader: bufio.NewReader(port)}
	if err := t.writeCommand(fmt.Sprintf("S%c", code)); err != nil {
		port.Close()
		return nil, err
	}
	if err := t.writeCommand("O"); err != nil {
		port.Close()
		return nil, err
	}
	return t, nil
}

// Close closes the CAN channel and the underlying serial port.
func (t *Transport) Close() error {
	t.writeCommand("C")
	return t.port.Close()
}

func (t *Transport) writeCommand(cmd string) error {
	_, err := t.port.Write([]byte(cmd + "\r"))
	return err
}

// Send encodes a standard (11-bit) CAN frame as an SLCAN "t" command and
// writes it to the adapter. It matches the SendCAN shim shape so it can be
// wired directly into a diagnostic client's capabilities.
func (t *Transport) Send(arbitrationID uint32, data []byte) bool {
	if len(data) > 8 {
		return false
	}
	cmd := fmt.Sprintf("t%03X%X%X", arbitrationID&0x7FF, len(data), data)
	return t.writeCommand(cmd) == nil
}

// Receive blocks until the next standard ("tIIILDD...") or extended
// ("TIIIIIIIILDD...") frame line arrives from the adapter, skipping status
// and echo lines it doesn't understand
// (bell-terminated errors, "z"/"Z" send acks).
func (t *Transport) Receive() (Frame, error) {
	for {
		line, err := t.reader.ReadString('\r')
		if err != nil {
			return Frame{}, err
		}
		line = line[:len(line)-1]
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case 't':
			return parseStandardFrame(line)
		case 'T':
			return parseExtendedFrame(line)
		default:
			// ack/nack/status byte from a previous command; not a frame
			continue
		}
	}
}

func parseStandardFrame(line string) (Frame, error) {
	if len(line) < 5 {
		return Frame{}, fmt.Errorf("slcan: truncated frame %q", line)
	}
	var arbID uint32
	if _, err := fmt.Sscanf(line[1:4], "%03X", &arbID); err != nil {
		return Frame{}, fmt.Errorf("slcan: bad arbitration id in %q: %w", line, err)
	}
	length := int(line[4] - '0')
	if length < 0 || length > 8 || len(line) < 5+length*2 {
		return Frame{}, fmt.Errorf("slcan: bad length in %q", line)
	}
	data := make([]byte, length)
	for i := 0; i < length; i++ {
		var b uint32
		if _, err := fmt.Sscanf(line[5+i*2:7+i*2], "%02X", &b); err != nil {
			return Frame{}, fmt.Errorf("slcan: bad data byte in %q: %w", line, err)
		}
		data[i] = byte(b)
	}
	return Frame{ArbitrationID: arbID, Data: data}, nil
}

func parseExtendedFrame(line string) (Frame, error) {
	if len(line) < 10 {
		return Frame{}, fmt.Errorf("slcan: truncated extended frame %q", line)
	}
	var arbID uint32
	if _, err := fmt.Sscanf(line[1:9], "%08X", &arbID); err != nil {
		return Frame{}, fmt.Errorf("slcan: bad arbitration id in %q: %w", line, err)
	}
	length := int(line[9] - '0')
	if length < 0 || length > 8 || len(line) < 10+length*2 {
		return Frame{}, fmt.Errorf("slcan: bad length in %q", line)
	}
	data := make([]byte, length)
	for i := 0; i < length; i++ {
		var b uint32
		if _, err := fmt.Sscanf(line[10+i*2:12+i*2], "%02X", &b); err != nil {
			return Frame{}, fmt.Errorf("slcan: bad data byte in %q: %w", line, err)
		}
		data[i] = byte(b)
	}
	return Frame{ArbitrationID: arbID, Extended: true, Data: data}, nil
}
