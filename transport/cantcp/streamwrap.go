package cantcp

import (
	"net"
	"time"
)

const maxDatagramLength = 260

// udpStreamWrapper wraps a *net.UDPConn to let a datagram socket satisfy
// io.ReadWriteCloser, consuming received bytes one read at a time rather
// than one datagram at a time.
type udpStreamWrapper struct {
	leftoverCount int
	rxbuf         []byte
	sock          *net.UDPConn
}

func newUDPStreamWrapper(sock *net.UDPConn) *udpStreamWrapper {
	return &udpStreamWrapper{
		rxbuf: make([]byte, maxDatagramLength),
		sock:  sock,
	}
}

func (w *udpStreamWrapper) Read(buf []byte) (int, error) {
	var copied, rlen int
	if w.leftoverCount > 0 {
		copied = copy(buf, w.rxbuf[0:w.leftoverCount])
		if w.leftoverCount > copied {
			copy(w.rxbuf, w.rxbuf[copied:w.leftoverCount])
		}
		w.leftoverCount -= copied
		return copied, nil
	}

	rlen, err := w.sock.Read(w.rxbuf)
	if err != nil {
		return 0, err
	}
	copied = copy(buf, w.rxbuf[0:rlen])
	if rlen > copied {
		copy(w.rxbuf, w.rxbuf[copied:rlen])
	}
	w.leftoverCount = rlen - copied
	return copied, nil
}

func (w *udpStreamWrapper) Write(buf []byte) (int, error) {
	return w.sock.Write(buf)
}

func (w *udpStreamWrapper) Close() error {
	return w.sock.Close()
}

func (w *udpStreamWrapper) SetDeadline(deadline time.Time) error {
	return w.sock.SetDeadline(deadline)
}
