package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
)

// CommandError carries the compositor's rejection text for an action
// command whose response was anything other than the literal "ok".
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string {
	return "compositor rejected command: " + e.Message
}

// SchemaError reports a JSON response that does not match the command's
// known schema. It signals protocol-version skew, not a transport failure,
// so it is distinct from the errors roundTrip returns.
type SchemaError struct {
	Command string
	Field   string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s response: field %q: %v", e.Command, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s response: %v", e.Command, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Client sends commands on the request socket. Each call opens its own
// connection; there is no pooling, so a Client is safe to share only in the
// sense that calls do not touch common state beyond the configured path.
type Client struct {
	path   string
	logger *slog.Logger
}

// NewClient returns a client for the request socket at path.
func NewClient(path string) *Client {
	return NewClientLogger(path, nil)
}

// NewClientLogger returns a client that logs schema mismatches to logger.
func NewClientLogger(path string, logger *slog.Logger) *Client {
	return &Client{path: path, logger: logger}
}

// Do sends an action command and classifies the acknowledgement: the
// literal "ok" yields nil, any other payload a *CommandError with that text.
func (c *Client) Do(ctx context.Context, cmd Command) error {
	data, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return err
	}
	if string(data) == "ok" {
		return nil
	}
	return &CommandError{Message: string(data)}
}

// Raw sends any command and returns the response bytes unclassified.
func (c *Client) Raw(ctx context.Context, cmd Command) ([]byte, error) {
	return c.roundTrip(ctx, cmd)
}

// roundTrip performs one connect, write-all, read-until-close cycle.
func (c *Client) roundTrip(ctx context.Context, cmd Command) ([]byte, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.path)
	if err != nil {
		return nil, fmt.Errorf("connect request socket %s: %w", c.path, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	// The compositor does not tolerate fragmented requests: the full frame,
	// NUL terminator included, is prepared before the first write call.
	frame := append(Render(cmd), 0)
	for len(frame) > 0 {
		n, err := conn.Write(frame)
		if err != nil {
			return nil, fmt.Errorf("write request: %w", err)
		}
		frame = frame[n:]
	}

	// The peer frames its response by closing the connection. io.ReadAll
	// grows its buffer geometrically, never per byte.
	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// query runs a JSON info command and decodes into v.
func (c *Client) query(ctx context.Context, cmd Command, v any) error {
	data, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return c.schemaError(cmd, err)
	}
	return nil
}

// text runs a raw-text info command.
func (c *Client) text(ctx context.Context, cmd RawQuery) (string, error) {
	data, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) schemaError(cmd Command, err error) error {
	schemaErr := &SchemaError{Command: cmd.wire(), Err: err}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		schemaErr.Field = typeErr.Field
	}

	if c.logger != nil {
		c.logger.Warn("response schema mismatch",
			"command", schemaErr.Command,
			"field", schemaErr.Field,
			"error", err.Error(),
		)
	}
	return schemaErr
}

func (c *Client) Version(ctx context.Context) (Version, error) {
	var v Version
	err := c.query(ctx, QueryVersion, &v)
	return v, err
}

func (c *Client) Monitors(ctx context.Context) ([]Monitor, error) {
	var v []Monitor
	err := c.query(ctx, QueryMonitors, &v)
	return v, err
}

func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var v []Workspace
	err := c.query(ctx, QueryWorkspaces, &v)
	return v, err
}

func (c *Client) ActiveWorkspace(ctx context.Context) (Workspace, error) {
	var v Workspace
	err := c.query(ctx, QueryActiveWorkspace, &v)
	return v, err
}

func (c *Client) Clients(ctx context.Context) ([]Window, error) {
	var v []Window
	err := c.query(ctx, QueryClients, &v)
	return v, err
}

func (c *Client) ActiveWindow(ctx context.Context) (Window, error) {
	var v Window
	err := c.query(ctx, QueryActiveWindow, &v)
	return v, err
}

func (c *Client) Layers(ctx context.Context) (Layers, error) {
	var v Layers
	err := c.query(ctx, QueryLayers, &v)
	return v, err
}

func (c *Client) Devices(ctx context.Context) (Devices, error) {
	var v Devices
	err := c.query(ctx, QueryDevices, &v)
	return v, err
}

func (c *Client) Binds(ctx context.Context) ([]Bind, error) {
	var v []Bind
	err := c.query(ctx, QueryBinds, &v)
	return v, err
}

// Animations returns the animation table and the defined bezier curves; the
// compositor reports them as a two-element array.
func (c *Client) Animations(ctx context.Context) ([]Animation, []BezierCurve, error) {
	var raw [2]json.RawMessage
	if err := c.query(ctx, QueryAnimations, &raw); err != nil {
		return nil, nil, err
	}

	var animations []Animation
	if err := json.Unmarshal(raw[0], &animations); err != nil {
		return nil, nil, c.schemaError(QueryAnimations, err)
	}
	var beziers []BezierCurve
	if err := json.Unmarshal(raw[1], &beziers); err != nil {
		return nil, nil, c.schemaError(QueryAnimations, err)
	}
	return animations, beziers, nil
}

func (c *Client) ConfigErrors(ctx context.Context) ([]string, error) {
	var v []string
	err := c.query(ctx, QueryConfigErrors, &v)
	return v, err
}

func (c *Client) CursorPos(ctx context.Context) (CursorPos, error) {
	var v CursorPos
	err := c.query(ctx, QueryCursorPos, &v)
	return v, err
}

func (c *Client) GlobalShortcuts(ctx context.Context) ([]GlobalShortcut, error) {
	var v []GlobalShortcut
	err := c.query(ctx, QueryGlobalShortcuts, &v)
	return v, err
}

func (c *Client) Instances(ctx context.Context) ([]Instance, error) {
	var v []Instance
	err := c.query(ctx, QueryInstances, &v)
	return v, err
}

func (c *Client) Layouts(ctx context.Context) ([]string, error) {
	var v []string
	err := c.query(ctx, QueryLayouts, &v)
	return v, err
}

func (c *Client) WorkspaceRules(ctx context.Context) ([]WorkspaceRule, error) {
	var v []WorkspaceRule
	err := c.query(ctx, QueryWorkspaceRules, &v)
	return v, err
}

func (c *Client) Descriptions(ctx context.Context) ([]OptionDescription, error) {
	var v []OptionDescription
	err := c.query(ctx, QueryDescriptions, &v)
	return v, err
}

func (c *Client) GetOption(ctx context.Context, name string) (Option, error) {
	var v Option
	err := c.query(ctx, GetOption{Name: name}, &v)
	return v, err
}

func (c *Client) Decorations(ctx context.Context, class string) ([]Decoration, error) {
	var v []Decoration
	err := c.query(ctx, GetDecorations{Class: class}, &v)
	return v, err
}

// Splash returns the compositor's splash text verbatim.
func (c *Client) Splash(ctx context.Context) (string, error) {
	return c.text(ctx, QuerySplash)
}

// RollingLog returns the compositor's recent log output verbatim.
func (c *Client) RollingLog(ctx context.Context) (string, error) {
	return c.text(ctx, QueryRollingLog)
}

// SystemInfo returns the compositor's system report verbatim.
func (c *Client) SystemInfo(ctx context.Context) (string, error) {
	return c.text(ctx, QuerySystemInfo)
}
