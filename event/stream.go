package event

import (
	"context"
	"fmt"
	"log/slog"
	"net"
)

// Stream is a long-lived connection to the event socket. It is opened once
// and read until the compositor closes it; there is no automatic reconnect.
// A Stream serves one caller at a time.
type Stream struct {
	conn   net.Conn
	framer *Framer
	logger *slog.Logger
}

// Connect dials the event socket at path.
func Connect(ctx context.Context, path string) (*Stream, error) {
	return ConnectLogger(ctx, path, nil)
}

// ConnectLogger dials the event socket with decode failures logged to logger.
func ConnectLogger(ctx context.Context, path string, logger *slog.Logger) (*Stream, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect event socket %s: %w", path, err)
	}
	return &Stream{conn: conn, framer: NewFramer(conn), logger: logger}, nil
}

// Next consumes and decodes the next event line. Decode failures are
// per-line: the caller can log and call Next again. io.EOF reports the
// compositor closing the socket; ErrLineTooLong is fatal for the stream.
func (s *Stream) Next(diag *Diagnostics) (Event, error) {
	line, err := s.framer.ConsumeLine()
	if err != nil {
		return nil, err
	}

	ev, err := Parse(line, diag)
	if err != nil {
		if s.logger != nil && diag != nil {
			s.logger.Warn("drop undecodable event line",
				"error", err.Error(),
				"line", diag.Line,
				"event", diag.Event,
				"params_read", diag.ParamsRead,
			)
		}
		return nil, err
	}
	return ev, nil
}

// Close closes the underlying connection. A blocked Next returns once the
// descriptor is closed, which is the only way to bound it.
func (s *Stream) Close() error {
	return s.conn.Close()
}
