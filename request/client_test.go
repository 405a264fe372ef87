package request

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubServer answers each connection with the response mapped to the
// received wire bytes (NUL terminator stripped), then closes it.
type stubServer struct {
	t         *testing.T
	listener  net.Listener
	responses map[string]string
	received  chan string
}

func newStubServer(t *testing.T, responses map[string]string) *stubServer {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), ".socket.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	s := &stubServer{
		t:         t,
		listener:  listener,
		responses: responses,
		received:  make(chan string, 16),
	}
	go s.serve()
	return s
}

func (s *stubServer) path() string { return s.listener.Addr().String() }

func (s *stubServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		buf := make([]byte, 4096)
		var request []byte
		for {
			n, readErr := conn.Read(buf)
			request = append(request, buf[:n]...)
			if readErr != nil || bytes.IndexByte(request, 0) >= 0 {
				break
			}
		}

		wire := string(bytes.TrimSuffix(request, []byte{0}))
		s.received <- wire
		_, _ = conn.Write([]byte(s.responses[wire]))
		_ = conn.Close()
	}
}

func TestDoAcknowledgedOK(t *testing.T) {
	server := newStubServer(t, map[string]string{"dispatch workspace 3": "ok"})
	client := NewClient(server.path())

	err := client.Do(context.Background(), Dispatch{Args: "workspace 3"})
	require.NoError(t, err)
	require.Equal(t, "dispatch workspace 3", <-server.received)
}

func TestDoSurfacesRejectionText(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"dispatch frobnicate": "Invalid dispatcher",
	})
	client := NewClient(server.path())

	err := client.Do(context.Background(), Dispatch{Args: "frobnicate"})
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "Invalid dispatcher", cmdErr.Message)
}

func TestMonitorsDecodesSchema(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/monitors": `[{"id":0,"name":"DP-1","description":"Dell U2720Q","width":3840,"height":2160,"refreshRate":59.99,"focused":true,"activeWorkspace":{"id":3,"name":"web"},"scale":1.5}]`,
	})
	client := NewClient(server.path())

	monitors, err := client.Monitors(context.Background())
	require.NoError(t, err)
	require.Len(t, monitors, 1)
	require.Equal(t, "DP-1", monitors[0].Name)
	require.Equal(t, 3840, monitors[0].Width)
	require.InEpsilon(t, 59.99, monitors[0].RefreshRate, 1e-9)
	require.True(t, monitors[0].Focused)
	require.Equal(t, WorkspaceRef{ID: 3, Name: "web"}, monitors[0].ActiveWorkspace)
}

func TestActiveWindowDecodesSchema(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/activewindow": `{"address":"0x5934277460f0","at":[10,20],"size":[800,600],"workspace":{"id":-99,"name":"special:term"},"class":"kitty","title":"zsh","pid":4242,"pinned":true,"grouped":["0xaa","0xbb"]}`,
	})
	client := NewClient(server.path())

	window, err := client.ActiveWindow(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0x5934277460f0", window.Address)
	require.Equal(t, [2]int{10, 20}, window.At)
	require.Equal(t, -99, window.Workspace.ID)
	require.Equal(t, []string{"0xaa", "0xbb"}, window.Grouped)
	require.True(t, window.Pinned)
}

func TestDevicesDecodesSchema(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/devices": `{"mice":[{"address":"0x1","name":"logitech-mx","defaultSpeed":0.5}],"keyboards":[{"address":"0x2","name":"kb","layout":"us","active_keymap":"English (US)","main":true}],"tablets":[],"touch":[],"switches":[{"address":"0x3","name":"Lid Switch"}]}`,
	})
	client := NewClient(server.path())

	devices, err := client.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices.Mice, 1)
	require.Equal(t, "logitech-mx", devices.Mice[0].Name)
	require.True(t, devices.Keyboards[0].Main)
	require.Equal(t, "Lid Switch", devices.Switches[0].Name)
}

func TestGetOptionRendersArgumentAndDecodes(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/getoption general:gaps_in": `{"option":"general:gaps_in","int":5,"set":true}`,
	})
	client := NewClient(server.path())

	option, err := client.GetOption(context.Background(), "general:gaps_in")
	require.NoError(t, err)
	require.Equal(t, "general:gaps_in", option.Option)
	require.Equal(t, int64(5), option.Int)
	require.True(t, option.Set)
}

func TestAnimationsDecodesTwoElementArray(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/animations": `[[{"name":"windows","overridden":false,"bezier":"easeOutQuint","enabled":true,"speed":4.79,"style":"popin"}],[{"name":"easeOutQuint"}]]`,
	})
	client := NewClient(server.path())

	animations, beziers, err := client.Animations(context.Background())
	require.NoError(t, err)
	require.Len(t, animations, 1)
	require.Equal(t, "windows", animations[0].Name)
	require.Equal(t, "easeOutQuint", animations[0].Bezier)
	require.Len(t, beziers, 1)
	require.Equal(t, "easeOutQuint", beziers[0].Name)
}

func TestSchemaMismatchReportsField(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/monitors": `[{"id":"not-a-number","name":"DP-1"}]`,
	})
	client := NewClientLogger(server.path(), slog.New(slog.DiscardHandler))

	_, err := client.Monitors(context.Background())
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "j/monitors", schemaErr.Command)
	require.Equal(t, "id", schemaErr.Field)
}

func TestSchemaMismatchDistinctFromTransportError(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "absent.sock"))

	_, err := client.Monitors(context.Background())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.False(t, errors.As(err, &schemaErr))
	require.Contains(t, err.Error(), "connect request socket")
}

func TestSplashReturnsRawText(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"splash": "You're doing great.",
	})
	client := NewClient(server.path())

	splash, err := client.Splash(context.Background())
	require.NoError(t, err)
	require.Equal(t, "You're doing great.", splash)
	require.Equal(t, "splash", <-server.received)
}

func TestRawReturnsUnclassifiedBytes(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"j/version": `{"branch":"main"}`,
	})
	client := NewClient(server.path())

	data, err := client.Raw(context.Background(), QueryVersion)
	require.NoError(t, err)
	require.JSONEq(t, `{"branch":"main"}`, string(data))
}

func TestRoundTripReadsLargeResponses(t *testing.T) {
	// A payload well past any single read forces the geometric accumulate
	// path rather than a one-shot read.
	large := bytes.Repeat([]byte("x"), 1<<20)
	server := newStubServer(t, map[string]string{"rollinglog": string(large)})
	client := NewClient(server.path())

	log, err := client.RollingLog(context.Background())
	require.NoError(t, err)
	require.Equal(t, string(large), log)
}

func TestRoundTripSendsNULTerminatedFrame(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), ".socket.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	frames := make(chan []byte, 1)
	go func() {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 64)
		var frame []byte
		for {
			n, readErr := conn.Read(buf)
			frame = append(frame, buf[:n]...)
			if readErr != nil || bytes.IndexByte(frame, 0) >= 0 {
				break
			}
		}
		frames <- frame
		_, _ = conn.Write([]byte("ok"))
	}()

	client := NewClient(socketPath)
	require.NoError(t, client.Do(context.Background(), Reload{}))
	require.Equal(t, append([]byte("reload"), 0), <-frames)
}
