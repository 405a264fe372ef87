// Package request implements the one-shot command/query side of the
// Hyprland control protocol.
package request

import (
	"fmt"
	"strconv"
	"strings"
)

// responseClass tells the client how to interpret a command's response.
type responseClass int

const (
	// classAction expects the literal "ok" or an error message.
	classAction responseClass = iota
	// classJSON expects a JSON document with a per-command schema.
	classJSON
	// classRaw expects plain text that is surfaced untouched.
	classRaw
)

// Command is one request in the compositor's command vocabulary. The set of
// implementations is closed; Render produces each variant's exact wire form.
type Command interface {
	wire() string
	class() responseClass
}

// Render returns the command's wire bytes, without the NUL terminator the
// transport appends. Rendering is pure and cannot fail.
func Render(cmd Command) []byte {
	return []byte(cmd.wire())
}

// RGBA is a color in the compositor's rgba(AARRGGBB) notation.
type RGBA struct {
	R, G, B, A uint8
}

// String renders the color as lowercase 8-hex-digit rgba() syntax.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%02x%02x%02x%02x)", c.A, c.R, c.G, c.B)
}

// NotifyIcon selects the icon shown by the Notify command.
type NotifyIcon int

const (
	IconNone     NotifyIcon = -1
	IconWarning  NotifyIcon = 0
	IconInfo     NotifyIcon = 1
	IconHint     NotifyIcon = 2
	IconError    NotifyIcon = 3
	IconConfused NotifyIcon = 4
	IconOK       NotifyIcon = 5
)

// Dispatch invokes a dispatcher, e.g. Dispatch{Args: "workspace 3"}.
type Dispatch struct {
	Args string
}

// Keyword sets a config keyword at runtime.
type Keyword struct {
	Name  string
	Value string
}

// Reload forces a config reload.
type Reload struct{}

// Kill enters window-kill mode.
type Kill struct{}

// SetCursor sets the cursor theme and size.
type SetCursor struct {
	Theme string
	Size  int
}

// OutputCreate adds a virtual output; Name is optional.
type OutputCreate struct {
	Backend string
	Name    string
}

// OutputRemove removes a virtual output.
type OutputRemove struct {
	Name string
}

// SwitchXKBLayout changes a keyboard's layout; Cmd is "next", "prev" or an
// absolute layout index.
type SwitchXKBLayout struct {
	Device string
	Cmd    string
}

// SetError displays a colored error bar with Message.
type SetError struct {
	Color   RGBA
	Message string
}

// ClearError removes the error bar.
type ClearError struct{}

// Notify shows an on-screen notification. FontSize is skipped when zero or
// negative.
type Notify struct {
	Icon      NotifyIcon
	TimeoutMs int
	Color     RGBA
	FontSize  int
	Message   string
}

// DismissNotify dismisses up to Count notifications; a negative Count
// dismisses all of them.
type DismissNotify struct {
	Count int
}

func (c Dispatch) wire() string { return "dispatch " + c.Args }
func (c Keyword) wire() string  { return "keyword " + c.Name + " " + c.Value }
func (Reload) wire() string     { return "reload" }
func (Kill) wire() string       { return "kill" }

func (c SetCursor) wire() string {
	return "setcursor " + c.Theme + " " + strconv.Itoa(c.Size)
}

func (c OutputCreate) wire() string {
	if c.Name == "" {
		return "output create " + c.Backend
	}
	return "output create " + c.Backend + " " + c.Name
}

func (c OutputRemove) wire() string { return "output remove " + c.Name }

func (c SwitchXKBLayout) wire() string {
	return "switchxkblayout " + c.Device + " " + c.Cmd
}

func (c SetError) wire() string {
	return "seterror " + c.Color.String() + " " + c.Message
}

func (ClearError) wire() string { return "seterror disable" }

func (c Notify) wire() string {
	var b strings.Builder
	b.WriteString("notify ")
	b.WriteString(strconv.Itoa(int(c.Icon)))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(c.TimeoutMs))
	b.WriteByte(' ')
	b.WriteString(c.Color.String())
	b.WriteByte(' ')
	if c.FontSize > 0 {
		b.WriteString("fontsize:")
		b.WriteString(strconv.Itoa(c.FontSize))
		b.WriteByte(' ')
	}
	b.WriteString(c.Message)
	return b.String()
}

func (c DismissNotify) wire() string {
	if c.Count < 0 {
		return "dismissnotify"
	}
	return "dismissnotify " + strconv.Itoa(c.Count)
}

func (Dispatch) class() responseClass        { return classAction }
func (Keyword) class() responseClass         { return classAction }
func (Reload) class() responseClass          { return classAction }
func (Kill) class() responseClass            { return classAction }
func (SetCursor) class() responseClass       { return classAction }
func (OutputCreate) class() responseClass    { return classAction }
func (OutputRemove) class() responseClass    { return classAction }
func (SwitchXKBLayout) class() responseClass { return classAction }
func (SetError) class() responseClass        { return classAction }
func (ClearError) class() responseClass      { return classAction }
func (Notify) class() responseClass          { return classAction }
func (DismissNotify) class() responseClass   { return classAction }

// Query is a no-argument info command answered with JSON.
type Query string

const (
	QueryVersion         Query = "version"
	QueryMonitors        Query = "monitors"
	QueryWorkspaces      Query = "workspaces"
	QueryActiveWorkspace Query = "activeworkspace"
	QueryClients         Query = "clients"
	QueryActiveWindow    Query = "activewindow"
	QueryLayers          Query = "layers"
	QueryDevices         Query = "devices"
	QueryBinds           Query = "binds"
	QueryAnimations      Query = "animations"
	QueryConfigErrors    Query = "configerrors"
	QueryCursorPos       Query = "cursorpos"
	QueryGlobalShortcuts Query = "globalshortcuts"
	QueryInstances       Query = "instances"
	QueryLayouts         Query = "layouts"
	QueryWorkspaceRules  Query = "workspacerules"
	QueryDescriptions    Query = "descriptions"
)

func (q Query) wire() string       { return "j/" + string(q) }
func (Query) class() responseClass { return classJSON }

// RawQuery is an info command whose payload is plain text, not JSON.
type RawQuery string

const (
	QuerySplash     RawQuery = "splash"
	QueryRollingLog RawQuery = "rollinglog"
	QuerySystemInfo RawQuery = "systeminfo"
)

func (q RawQuery) wire() string       { return string(q) }
func (RawQuery) class() responseClass { return classRaw }

// GetOption queries one config option's current value.
type GetOption struct {
	Name string
}

func (c GetOption) wire() string       { return "j/getoption " + c.Name }
func (GetOption) class() responseClass { return classJSON }

// GetDecorations queries the decorations applied to windows of a class.
type GetDecorations struct {
	Class string
}

func (c GetDecorations) wire() string       { return "j/decorations " + c.Class }
func (GetDecorations) class() responseClass { return classJSON }
