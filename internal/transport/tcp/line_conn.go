package tcp

import (
	"bufio"
	"io"
	"net"
	"time"

	"gobang-server/internal/protocol"
)

const (
	DefaultMaxLineBytes = 4096
	writeTimeout        = 10 * time.Second
)

// lineConn frames protocol lines over a stream socket, one per "\n".
type lineConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func newLineConn(conn net.Conn, maxLineBytes int) *lineConn {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 512), maxLineBytes)
	return &lineConn{conn: conn, scanner: sc}
}

func (l *lineConn) ReadLine() (string, error) {
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (l *lineConn) WriteLine(line string) error {
	if err := l.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	_, err := l.conn.Write([]byte(line + protocol.MessageEnd))
	return err
}

func (l *lineConn) Close() error { return l.conn.Close() }

func (l *lineConn) RemoteAddr() string { return l.conn.RemoteAddr().String() }
