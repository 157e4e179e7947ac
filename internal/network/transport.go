// Delivery of formatted records to the remote collector over UDP or TCP
package network

import (
	"context"
	"fmt"
	"io"
	"net"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
)

// Opens the connection to the collector.
// UDP binds a datagram socket to the destination, TCP performs a blocking connect.
// No timeout is applied beyond the operating system defaults.
func Open(ctx context.Context, protocol string, address string) (transport *Transport, err error) {
	if protocol != ProtocolUDP && protocol != ProtocolTCP {
		err = fmt.Errorf("unsupported protocol '%s'", protocol)
		return
	}

	transport = &Transport{
		protocol: protocol,
		address:  address,
	}

	err = transport.dial(ctx)
	if err != nil {
		transport = nil
		return
	}

	if protocol == ProtocolUDP {
		transport.lookupMaxPayload(ctx)
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Connected to %s collector %s\n", protocol, address)
	return
}

// Writes one record. Exactly one attempt, no buffering.
// TCP records are terminated by a single newline.
func (transport *Transport) Send(ctx context.Context, message string) (err error) {
	if transport.conn == nil {
		err = &SendError{Protocol: transport.protocol, Address: transport.address, Err: ErrNotConnected}
		return
	}

	var frame []byte
	switch transport.protocol {
	case ProtocolTCP:
		frame = make([]byte, 0, len(message)+1)
		frame = append(frame, message...)
		frame = append(frame, '\n')
	default:
		frame = []byte(message)
		if transport.maxPayload > 0 && len(frame) > transport.maxPayload {
			logctx.LogEvent(ctx, global.VerbosityDebug, global.WarnLog,
				"record of %d bytes exceeds path payload size of %d bytes and may be fragmented\n",
				len(frame), transport.maxPayload)
		}
	}

	bytesWritten, err := transport.conn.Write(frame)
	if err == nil && bytesWritten < len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		err = &SendError{Protocol: transport.protocol, Address: transport.address, Err: err}
		return
	}
	return
}

// Discards the current connection and opens a fresh one.
// On failure the transport is left without a connection until the next successful reconnect.
func (transport *Transport) Reconnect(ctx context.Context) (err error) {
	if transport.conn != nil {
		transport.conn.Close()
		transport.conn = nil
	}

	err = transport.dial(ctx)
	if err != nil {
		return
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Reconnected to %s collector %s\n", transport.protocol, transport.address)
	return
}

// Closes the current connection, safe to call more than once
func (transport *Transport) Close() (err error) {
	if transport == nil || transport.conn == nil {
		return
	}
	err = transport.conn.Close()
	transport.conn = nil
	return
}

func (transport *Transport) Protocol() string {
	return transport.protocol
}

func (transport *Transport) Address() string {
	return transport.address
}

// Creates the underlying connection, wrapping any failure as a ConnectError
func (transport *Transport) dial(ctx context.Context) (err error) {
	var conn net.Conn
	switch transport.protocol {
	case ProtocolUDP:
		var destAddr *net.UDPAddr
		destAddr, err = net.ResolveUDPAddr("udp", transport.address)
		if err != nil {
			break
		}
		conn, err = net.DialUDP("udp", nil, destAddr)
	case ProtocolTCP:
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", transport.address)
	}
	if err != nil {
		err = &ConnectError{Protocol: transport.protocol, Address: transport.address, Err: err}
		return
	}

	transport.conn = conn
	return
}

// Records the path payload limit for size warnings. Lookup failures only disable the warning.
func (transport *Transport) lookupMaxPayload(ctx context.Context) {
	remote, ok := transport.conn.RemoteAddr().(*net.UDPAddr)
	if !ok {
		return
	}

	maxPayload, err := FindSendingMaxUDPPayload(remote.IP.String())
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityDebug, global.WarnLog,
			"unable to determine path payload size for %s: %v\n", remote.IP, err)
		return
	}
	transport.maxPayload = maxPayload

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Maximum unfragmented record size toward %s is %d bytes\n", remote.IP, maxPayload)
}
