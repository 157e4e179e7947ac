package network

import (
	"errors"
	"fmt"
	"net"
)

const (
	ProtocolUDP string = "udp"
	ProtocolTCP string = "tcp"
)

// Owned connection to the remote collector.
// Reconnect swaps the connection in place; callers only ever hold the Transport.
type Transport struct {
	protocol   string
	address    string
	conn       net.Conn
	maxPayload int // largest unfragmented UDP payload toward address, 0 when unknown
}

var ErrNotConnected = errors.New("no active connection")

// Initial connection or reconnection to the collector failed
type ConnectError struct {
	Protocol string
	Address  string
	Err      error
}

func (err *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s collector %s: %v", err.Protocol, err.Address, err.Err)
}

func (err *ConnectError) Unwrap() error {
	return err.Err
}

// A single record could not be written to the connection
type SendError struct {
	Protocol string
	Address  string
	Err      error
}

func (err *SendError) Error() string {
	return fmt.Sprintf("failed to send to %s collector %s: %v", err.Protocol, err.Address, err.Err)
}

func (err *SendError) Unwrap() error {
	return err.Err
}
