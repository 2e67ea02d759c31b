// Package cantcp carries raw CAN frames over a TCP (or UDP, via
// NewUDPTransport) stream, for bench setups where the bus is bridged onto
// the network rather than reachable as a local SocketCAN or serial-line
// interface. It is adapted from a Modbus TCP (MBAP) transport: the same
// fixed-header-plus-length framing idea, with the MBAP fields replaced by
// an arbitration ID.
package cantcp

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net"
	"time"
)

const (
	// headerLength is 4 bytes of arbitration ID plus 1 length byte.
	headerLength    = 5
	maxFrameDataLen = 8
)

// Frame is a single raw CAN frame.
type Frame struct {
	ArbitrationID uint32
	Data          []byte
}

// Transport carries Frames over a stream socket (TCP, or UDP wrapped by
// NewUDPTransport below).
type Transport struct {
	logger  *logger
	socket  io.ReadWriteCloser
	timeout time.Duration
}

// NewTCPTransport returns a Transport reading and writing frames on socket,
// applying timeout as an I/O deadline around every operation.
func NewTCPTransport(socket net.Conn, timeout time.Duration, customLogger *log.Logger) *Transport {
	return &Transport{
		socket:  socket,
		timeout: timeout,
		logger:  newLogger(fmt.Sprintf("cantcp-transport(%s)", socket.RemoteAddr()), customLogger),
	}
}

// NewUDPTransport returns a Transport reading and writing frames over a UDP
// socket, presenting its datagrams as a byte stream via udpStreamWrapper.
func NewUDPTransport(socket *net.UDPConn, timeout time.Duration, customLogger *log.Logger) *Transport {
	return &Transport{
		socket:  newUDPStreamWrapper(socket),
		timeout: timeout,
		logger:  newLogger(fmt.Sprintf("cantcp-transport(%s)", socket.RemoteAddr()), customLogger),
	}
}

// Close closes the underlying socket.
func (t *Transport) Close() error {
	return t.socket.Close()
}

// deadliner is implemented by net.Conn and by udpStreamWrapper.
type deadliner interface {
	SetDeadline(time.Time) error
}

// Send writes frame to the socket. Its shape (arbitration ID, raw data
// bytes) matches the SendCAN shim the diagnostic layer expects, so a
// Transport's Send method can be wired in directly.
func (t *Transport) Send(arbitrationID uint32, data []byte) bool {
	if len(data) > maxFrameDataLen {
		t.logger.Errorf("frame data length %d exceeds %d", len(data), maxFrameDataLen)
		return false
	}
	if d, ok := t.socket.(deadliner); ok {
		if err := d.SetDeadline(time.Now().Add(t.timeout)); err != nil {
			t.logger.Errorf("setting write deadline: %v", err)
			return false
		}
	}
	if err := t.writeFrame(Frame{ArbitrationID: arbitrationID, Data: data}); err != nil {
		t.logger.Errorf("writing frame: %v", err)
		return false
	}
	return true
}

// Receive blocks until the next frame arrives on the socket, or the I/O
// deadline set from timeout expires.
func (t *Transport) Receive() (Frame, error) {
	if d, ok := t.socket.(deadliner); ok {
		if err := d.SetDeadline(time.Now().Add(t.timeout)); err != nil {
			return Frame{}, err
		}
	}
	return t.readFrame()
}

func (t *Transport) writeFrame(frame Frame) error {
	buf := make([]byte, headerLength+len(frame.Data))
	binary.BigEndian.PutUint32(buf[0:4], frame.ArbitrationID)
	buf[4] = byte(len(frame.Data))
	copy(buf[headerLength:], frame.Data)
	_, err := t.socket.Write(buf)
	return err
}

func (t *Transport) readFrame() (Frame, error) {
	header := make([]byte, headerLength)
	if _, err := io.ReadFull(t.socket, header); err != nil {
		return Frame{}, err
	}
	arbID := binary.BigEndian.Uint32(header[0:4])
	length := int(header[4])
	if length > maxFrameDataLen {
		return Frame{}, fmt.Errorf("cantcp: frame data length %d exceeds %d", length, maxFrameDataLen)
	}
	data := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(t.socket, data); err != nil {
			return Frame{}, err
		}
	}
	return Frame{ArbitrationID: arbID, Data: data}, nil
}
