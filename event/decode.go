package event

import (
	"errors"
	"fmt"
	"strings"
)

// Decode failure classes. All are recoverable: the next line decodes
// independently, so callers log diagnostics and continue.
var (
	ErrMissingEventName = errors.New("missing event name")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrMissingParams    = errors.New("missing parameters")
	ErrInvalidInteger   = errors.New("invalid integer parameter")
	ErrInvalidBoolean   = errors.New("invalid boolean parameter")
	ErrInvalidEnum      = errors.New("invalid enum ordinal")
)

// IsDecodeError reports whether err is a per-line decode failure, after
// which the stream remains usable, as opposed to a stream-level failure.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMissingEventName) ||
		errors.Is(err, ErrUnknownEvent) ||
		errors.Is(err, ErrMissingParams) ||
		errors.Is(err, ErrInvalidInteger) ||
		errors.Is(err, ErrInvalidBoolean) ||
		errors.Is(err, ErrInvalidEnum)
}

// nameSeparator splits an event line into its name and parameter region.
const nameSeparator = ">>"

// parsers maps each event name to its field-pulling function. The table
// replaces the source protocol's "declared field types" dispatch: each entry
// reads fields in the wire order with the wire types, nothing else.
var parsers = map[string]func(*cursor) (Event, error){
	"workspace": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return Workspace{Name: name}, nil
	},
	"workspacev2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return WorkspaceV2{ID: id, Name: name}, nil
	},
	"focusedmon": func(c *cursor) (Event, error) {
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		workspace, err := c.str()
		if err != nil {
			return nil, err
		}
		return FocusedMonitor{Monitor: monitor, Workspace: workspace}, nil
	},
	"focusedmonv2": func(c *cursor) (Event, error) {
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		return FocusedMonitorV2{Monitor: monitor, WorkspaceID: id}, nil
	},
	"activewindow": func(c *cursor) (Event, error) {
		class, err := c.str()
		if err != nil {
			return nil, err
		}
		title, err := c.str()
		if err != nil {
			return nil, err
		}
		return ActiveWindow{Class: class, Title: title}, nil
	},
	"activewindowv2": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return ActiveWindowV2{Address: address}, nil
	},
	"fullscreen": func(c *cursor) (Event, error) {
		on, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return Fullscreen{Fullscreen: on}, nil
	},
	"monitorremoved": func(c *cursor) (Event, error) {
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return MonitorRemoved{Monitor: monitor}, nil
	},
	"monitoradded": func(c *cursor) (Event, error) {
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return MonitorAdded{Monitor: monitor}, nil
	},
	"monitoraddedv2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		description, err := c.str()
		if err != nil {
			return nil, err
		}
		return MonitorAddedV2{ID: id, Name: name, Description: description}, nil
	},
	"monitorremovedv2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		description, err := c.str()
		if err != nil {
			return nil, err
		}
		return MonitorRemovedV2{ID: id, Name: name, Description: description}, nil
	},
	"createworkspace": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return CreateWorkspace{Name: name}, nil
	},
	"createworkspacev2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return CreateWorkspaceV2{ID: id, Name: name}, nil
	},
	"destroyworkspace": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return DestroyWorkspace{Name: name}, nil
	},
	"destroyworkspacev2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return DestroyWorkspaceV2{ID: id, Name: name}, nil
	},
	"moveworkspace": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveWorkspace{Name: name, Monitor: monitor}, nil
	},
	"moveworkspacev2": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveWorkspaceV2{ID: id, Name: name, Monitor: monitor}, nil
	},
	"renameworkspace": func(c *cursor) (Event, error) {
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		newName, err := c.str()
		if err != nil {
			return nil, err
		}
		return RenameWorkspace{ID: id, NewName: newName}, nil
	},
	"activespecial": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return ActiveSpecial{Name: name, Monitor: monitor}, nil
	},
	"activespecialv2": func(c *cursor) (Event, error) {
		// The id field is empty when the special workspace was closed.
		id, err := c.optionalInteger()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		monitor, err := c.str()
		if err != nil {
			return nil, err
		}
		return ActiveSpecialV2{ID: id, Name: name, Monitor: monitor}, nil
	},
	"activelayout": func(c *cursor) (Event, error) {
		keyboard, err := c.str()
		if err != nil {
			return nil, err
		}
		layout, err := c.str()
		if err != nil {
			return nil, err
		}
		return ActiveLayout{Keyboard: keyboard, Layout: layout}, nil
	},
	"openwindow": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		workspace, err := c.str()
		if err != nil {
			return nil, err
		}
		class, err := c.str()
		if err != nil {
			return nil, err
		}
		title, err := c.str()
		if err != nil {
			return nil, err
		}
		return OpenWindow{Address: address, Workspace: workspace, Class: class, Title: title}, nil
	},
	"closewindow": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return CloseWindow{Address: address}, nil
	},
	"movewindow": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		workspace, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveWindow{Address: address, Workspace: workspace}, nil
	},
	"movewindowv2": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		id, err := c.integer()
		if err != nil {
			return nil, err
		}
		workspace, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveWindowV2{Address: address, WorkspaceID: id, Workspace: workspace}, nil
	},
	"openlayer": func(c *cursor) (Event, error) {
		namespace, err := c.str()
		if err != nil {
			return nil, err
		}
		return OpenLayer{Namespace: namespace}, nil
	},
	"closelayer": func(c *cursor) (Event, error) {
		namespace, err := c.str()
		if err != nil {
			return nil, err
		}
		return CloseLayer{Namespace: namespace}, nil
	},
	"submap": func(c *cursor) (Event, error) {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		return Submap{Name: name}, nil
	},
	"changefloatingmode": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		floating, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return ChangeFloatingMode{Address: address, Floating: floating}, nil
	},
	"minimize": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		minimized, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return Minimize{Address: address, Minimized: minimized}, nil
	},
	"urgent": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return Urgent{Address: address}, nil
	},
	"screencast": func(c *cursor) (Event, error) {
		active, err := c.boolean()
		if err != nil {
			return nil, err
		}
		owner, err := c.enum(screencastOwnerCount)
		if err != nil {
			return nil, err
		}
		return Screencast{Active: active, Owner: ScreencastOwner(owner)}, nil
	},
	"windowtitle": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return WindowTitle{Address: address}, nil
	},
	"windowtitlev2": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		title, err := c.str()
		if err != nil {
			return nil, err
		}
		return WindowTitleV2{Address: address, Title: title}, nil
	},
	"moveintogroup": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveIntoGroup{Address: address}, nil
	},
	"moveoutofgroup": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		return MoveOutOfGroup{Address: address}, nil
	},
	"ignoregrouplock": func(c *cursor) (Event, error) {
		ignored, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return IgnoreGroupLock{Ignored: ignored}, nil
	},
	"lockgroups": func(c *cursor) (Event, error) {
		locked, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return LockGroups{Locked: locked}, nil
	},
	"configreloaded": func(*cursor) (Event, error) {
		return ConfigReloaded{}, nil
	},
	"pin": func(c *cursor) (Event, error) {
		address, err := c.str()
		if err != nil {
			return nil, err
		}
		pinned, err := c.boolean()
		if err != nil {
			return nil, err
		}
		return Pin{Address: address, Pinned: pinned}, nil
	},
}

// Parse decodes one event line (without its trailing newline). diag may be
// nil; when supplied it records decode progress for logging. The line is
// copied into the returned event, so the event outlives the framer buffer.
func Parse(line []byte, diag *Diagnostics) (Event, error) {
	text := string(line)
	if diag != nil {
		*diag = Diagnostics{Line: text}
	}

	name, params, found := strings.Cut(text, nameSeparator)
	if !found || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingEventName, text)
	}
	if diag != nil {
		diag.Event = name
	}

	c := newCursor(params, diag)

	// togglegroup's trailing field is a variable-length address list, so it
	// cannot go through the fixed-arity table.
	if name == "togglegroup" {
		open, err := c.boolean()
		if err != nil {
			return nil, fmt.Errorf("togglegroup: %w", err)
		}
		return ToggleGroup{Open: open, addresses: c.remainder()}, nil
	}

	parser, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}

	ev, err := parser(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ev, nil
}
