package event

import (
	"iter"
	"strings"
)

// Event is one decoded notification from the compositor. The set of
// implementations is closed; consumers dispatch with a type switch.
type Event interface {
	isEvent()
}

// ScreencastOwner identifies what a screen share is capturing.
type ScreencastOwner int

const (
	OwnerMonitor ScreencastOwner = iota
	OwnerWindow

	screencastOwnerCount = iota
)

// String returns the owner as Hyprland documents it.
func (o ScreencastOwner) String() string {
	switch o {
	case OwnerMonitor:
		return "monitor"
	case OwnerWindow:
		return "window"
	}
	return "unknown"
}

type (
	// Workspace: the focused workspace changed. Name is the workspace name,
	// which for numbered workspaces is the number as text.
	Workspace struct {
		Name string
	}

	// WorkspaceV2 carries the workspace id alongside the name. Ids are
	// signed: special workspaces live in the negative range.
	WorkspaceV2 struct {
		ID   int
		Name string
	}

	// FocusedMonitor: keyboard focus moved to another monitor.
	FocusedMonitor struct {
		Monitor   string
		Workspace string
	}

	FocusedMonitorV2 struct {
		Monitor     string
		WorkspaceID int
	}

	// ActiveWindow: the focused window changed.
	ActiveWindow struct {
		Class string
		Title string
	}

	ActiveWindowV2 struct {
		Address string
	}

	// Fullscreen: a window entered (true) or left (false) fullscreen.
	Fullscreen struct {
		Fullscreen bool
	}

	MonitorRemoved struct {
		Monitor string
	}

	MonitorAdded struct {
		Monitor string
	}

	MonitorAddedV2 struct {
		ID          int
		Name        string
		Description string
	}

	MonitorRemovedV2 struct {
		ID          int
		Name        string
		Description string
	}

	CreateWorkspace struct {
		Name string
	}

	CreateWorkspaceV2 struct {
		ID   int
		Name string
	}

	DestroyWorkspace struct {
		Name string
	}

	DestroyWorkspaceV2 struct {
		ID   int
		Name string
	}

	MoveWorkspace struct {
		Name    string
		Monitor string
	}

	MoveWorkspaceV2 struct {
		ID      int
		Name    string
		Monitor string
	}

	RenameWorkspace struct {
		ID      int
		NewName string
	}

	// ActiveSpecial: the special workspace shown on a monitor changed.
	// Name is empty when the special workspace was closed.
	ActiveSpecial struct {
		Name    string
		Monitor string
	}

	ActiveSpecialV2 struct {
		ID      int
		Name    string
		Monitor string
	}

	ActiveLayout struct {
		Keyboard string
		Layout   string
	}

	OpenWindow struct {
		Address   string
		Workspace string
		Class     string
		Title     string
	}

	CloseWindow struct {
		Address string
	}

	MoveWindow struct {
		Address   string
		Workspace string
	}

	MoveWindowV2 struct {
		Address     string
		WorkspaceID int
		Workspace   string
	}

	OpenLayer struct {
		Namespace string
	}

	CloseLayer struct {
		Namespace string
	}

	Submap struct {
		Name string
	}

	ChangeFloatingMode struct {
		Address  string
		Floating bool
	}

	Minimize struct {
		Address   string
		Minimized bool
	}

	Urgent struct {
		Address string
	}

	Screencast struct {
		Active bool
		Owner  ScreencastOwner
	}

	WindowTitle struct {
		Address string
	}

	WindowTitleV2 struct {
		Address string
		Title   string
	}

	// ToggleGroup: a window group was created (Open) or dissolved. The
	// member addresses are enumerated lazily via Addresses.
	ToggleGroup struct {
		Open      bool
		addresses string
	}

	MoveIntoGroup struct {
		Address string
	}

	MoveOutOfGroup struct {
		Address string
	}

	IgnoreGroupLock struct {
		Ignored bool
	}

	LockGroups struct {
		Locked bool
	}

	ConfigReloaded struct{}

	// Pin: a window was pinned or unpinned.
	Pin struct {
		Address string
		Pinned  bool
	}
)

// Addresses iterates the group's member window addresses without splitting
// them up front.
func (e ToggleGroup) Addresses() iter.Seq[string] {
	return func(yield func(string) bool) {
		if e.addresses == "" {
			return
		}
		for addr := range strings.SplitSeq(e.addresses, ",") {
			if !yield(addr) {
				return
			}
		}
	}
}

func (Workspace) isEvent()          {}
func (WorkspaceV2) isEvent()        {}
func (FocusedMonitor) isEvent()     {}
func (FocusedMonitorV2) isEvent()   {}
func (ActiveWindow) isEvent()       {}
func (ActiveWindowV2) isEvent()     {}
func (Fullscreen) isEvent()         {}
func (MonitorRemoved) isEvent()     {}
func (MonitorAdded) isEvent()       {}
func (MonitorAddedV2) isEvent()     {}
func (MonitorRemovedV2) isEvent()   {}
func (CreateWorkspace) isEvent()    {}
func (CreateWorkspaceV2) isEvent()  {}
func (DestroyWorkspace) isEvent()   {}
func (DestroyWorkspaceV2) isEvent() {}
func (MoveWorkspace) isEvent()      {}
func (MoveWorkspaceV2) isEvent()    {}
func (RenameWorkspace) isEvent()    {}
func (ActiveSpecial) isEvent()      {}
func (ActiveSpecialV2) isEvent()    {}
func (ActiveLayout) isEvent()       {}
func (OpenWindow) isEvent()         {}
func (CloseWindow) isEvent()        {}
func (MoveWindow) isEvent()         {}
func (MoveWindowV2) isEvent()       {}
func (OpenLayer) isEvent()          {}
func (CloseLayer) isEvent()         {}
func (Submap) isEvent()             {}
func (ChangeFloatingMode) isEvent() {}
func (Minimize) isEvent()           {}
func (Urgent) isEvent()             {}
func (Screencast) isEvent()         {}
func (WindowTitle) isEvent()        {}
func (WindowTitleV2) isEvent()      {}
func (ToggleGroup) isEvent()        {}
func (MoveIntoGroup) isEvent()      {}
func (MoveOutOfGroup) isEvent()     {}
func (IgnoreGroupLock) isEvent()    {}
func (LockGroups) isEvent()         {}
func (ConfigReloaded) isEvent()     {}
func (Pin) isEvent()                {}
