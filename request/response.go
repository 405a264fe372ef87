package request

// JSON schemas for the info commands, matching `hyprctl -j` output. Field
// sets follow the current protocol; unknown fields added by newer compositor
// releases are ignored, wrong-typed fields surface as SchemaError.

// WorkspaceRef is the compact workspace reference embedded in monitors and
// windows. Ids are signed: special workspaces use the negative range.
type WorkspaceRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Monitor struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Make             string       `json:"make"`
	Model            string       `json:"model"`
	Serial           string       `json:"serial"`
	Width            int          `json:"width"`
	Height           int          `json:"height"`
	RefreshRate      float64      `json:"refreshRate"`
	X                int          `json:"x"`
	Y                int          `json:"y"`
	ActiveWorkspace  WorkspaceRef `json:"activeWorkspace"`
	SpecialWorkspace WorkspaceRef `json:"specialWorkspace"`
	Reserved         [4]int       `json:"reserved"`
	Scale            float64      `json:"scale"`
	Transform        int          `json:"transform"`
	Focused          bool         `json:"focused"`
	DpmsStatus       bool         `json:"dpmsStatus"`
	VRR              bool         `json:"vrr"`
	ActivelyTearing  bool         `json:"activelyTearing"`
	Disabled         bool         `json:"disabled"`
	CurrentFormat    string       `json:"currentFormat"`
	MirrorOf         string       `json:"mirrorOf"`
	AvailableModes   []string     `json:"availableModes"`
}

type Workspace struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Monitor         string `json:"monitor"`
	MonitorID       int    `json:"monitorID"`
	Windows         int    `json:"windows"`
	HasFullscreen   bool   `json:"hasfullscreen"`
	LastWindow      string `json:"lastwindow"`
	LastWindowTitle string `json:"lastwindowtitle"`
	IsPersistent    bool   `json:"ispersistent"`
}

type Window struct {
	Address          string       `json:"address"`
	Mapped           bool         `json:"mapped"`
	Hidden           bool         `json:"hidden"`
	At               [2]int       `json:"at"`
	Size             [2]int       `json:"size"`
	Workspace        WorkspaceRef `json:"workspace"`
	Floating         bool         `json:"floating"`
	Pseudo           bool         `json:"pseudo"`
	Monitor          int          `json:"monitor"`
	Class            string       `json:"class"`
	Title            string       `json:"title"`
	InitialClass     string       `json:"initialClass"`
	InitialTitle     string       `json:"initialTitle"`
	PID              int          `json:"pid"`
	Xwayland         bool         `json:"xwayland"`
	Pinned           bool         `json:"pinned"`
	Fullscreen       int          `json:"fullscreen"`
	FullscreenClient int          `json:"fullscreenClient"`
	Grouped          []string     `json:"grouped"`
	Tags             []string     `json:"tags"`
	Swallowing       string       `json:"swallowing"`
	FocusHistoryID   int          `json:"focusHistoryID"`
}

// Layer is one surface on a monitor's layer-shell stack.
type Layer struct {
	Address   string `json:"address"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	Namespace string `json:"namespace"`
	PID       int    `json:"pid"`
}

// MonitorLayers groups a monitor's layers by shell level ("0" background
// through "3" overlay).
type MonitorLayers struct {
	Levels map[string][]Layer `json:"levels"`
}

// Layers maps monitor name to that monitor's layer stack.
type Layers map[string]MonitorLayers

type Mouse struct {
	Address      string  `json:"address"`
	Name         string  `json:"name"`
	DefaultSpeed float64 `json:"defaultSpeed"`
}

type Keyboard struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Rules        string `json:"rules"`
	Model        string `json:"model"`
	Layout       string `json:"layout"`
	Variant      string `json:"variant"`
	Options      string `json:"options"`
	ActiveKeymap string `json:"active_keymap"`
	CapsLock     bool   `json:"capsLock"`
	NumLock      bool   `json:"numLock"`
	Main         bool   `json:"main"`
}

type Tablet struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	BelongsTo struct {
		Address string `json:"address"`
		Name    string `json:"name"`
	} `json:"belongsTo"`
}

type TouchDevice struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type SwitchDevice struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type Devices struct {
	Mice      []Mouse        `json:"mice"`
	Keyboards []Keyboard     `json:"keyboards"`
	Tablets   []Tablet       `json:"tablets"`
	Touch     []TouchDevice  `json:"touch"`
	Switches  []SwitchDevice `json:"switches"`
}

type Bind struct {
	Locked         bool   `json:"locked"`
	Mouse          bool   `json:"mouse"`
	Release        bool   `json:"release"`
	Repeat         bool   `json:"repeat"`
	NonConsuming   bool   `json:"non_consuming"`
	HasDescription bool   `json:"has_description"`
	ModMask        int    `json:"modmask"`
	Submap         string `json:"submap"`
	Key            string `json:"key"`
	KeyCode        int    `json:"keycode"`
	CatchAll       bool   `json:"catch_all"`
	Description    string `json:"description"`
	Dispatcher     string `json:"dispatcher"`
	Arg            string `json:"arg"`
}

type Animation struct {
	Name       string  `json:"name"`
	Overridden bool    `json:"overridden"`
	Bezier     string  `json:"bezier"`
	Enabled    bool    `json:"enabled"`
	Speed      float64 `json:"speed"`
	Style      string  `json:"style"`
}

type BezierCurve struct {
	Name string `json:"name"`
}

type CursorPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GlobalShortcut struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Instance struct {
	Instance      string `json:"instance"`
	Time          int64  `json:"time"`
	PID           int    `json:"pid"`
	WaylandSocket string `json:"wl_socket"`
}

type WorkspaceRule struct {
	WorkspaceString string `json:"workspaceString"`
	Monitor         string `json:"monitor"`
	Default         bool   `json:"default"`
	Persistent      bool   `json:"persistent"`
	OnCreatedEmpty  string `json:"onCreatedEmpty"`
}

// Option is a config option's current value; only the field matching the
// option's type is meaningful.
type Option struct {
	Option string  `json:"option"`
	Int    int64   `json:"int"`
	Float  float64 `json:"float"`
	Str    string  `json:"str"`
	Set    bool    `json:"set"`
}

type Decoration struct {
	DecorationName string `json:"decorationName"`
	Priority       int    `json:"priority"`
}

// OptionDescription documents one config option, from the descriptions query.
type OptionDescription struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Type        int    `json:"type"`
	Flags       int    `json:"flags"`
}

type Version struct {
	Branch        string   `json:"branch"`
	Commit        string   `json:"commit"`
	Version       string   `json:"version"`
	Dirty         bool     `json:"dirty"`
	CommitMessage string   `json:"commit_message"`
	CommitDate    string   `json:"commit_date"`
	Tag           string   `json:"tag"`
	Commits       string   `json:"commits"`
	Flags         []string `json:"flags"`
}
