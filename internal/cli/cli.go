package cli

import (
	"fmt"
	"strings"
)

type Command string

const (
	CommandWatch        Command = "watch"
	CommandDispatch     Command = "dispatch"
	CommandNotify       Command = "notify"
	CommandMonitors     Command = "monitors"
	CommandWorkspaces   Command = "workspaces"
	CommandClients      Command = "clients"
	CommandActiveWindow Command = "activewindow"
	CommandDevices      Command = "devices"
	CommandSplash       Command = "splash"
	CommandVersion      Command = "version"
	CommandHelp         Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandWatch:        {},
	CommandDispatch:     {},
	CommandNotify:       {},
	CommandMonitors:     {},
	CommandWorkspaces:   {},
	CommandClients:      {},
	CommandActiveWindow: {},
	CommandDevices:      {},
	CommandSplash:       {},
	CommandVersion:      {},
	CommandHelp:         {},
}

// takesArgs marks commands that accept trailing positional arguments.
var takesArgs = map[Command]struct{}{
	CommandDispatch: {},
	CommandNotify:   {},
}

type Parsed struct {
	Command  Command
	Args     []string
	Verbose  bool
	ShowHelp bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "-v", "--verbose":
			parsed.Verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp

			if _, ok := takesArgs[cmd]; ok {
				parsed.Args = args[i+1:]
				if len(parsed.Args) == 0 {
					return Parsed{}, fmt.Errorf("%s requires arguments", cmd)
				}
				return parsed, nil
			}
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--verbose] <command> [args]

Commands:
  watch             Stream compositor events to stdout
  dispatch ARGS...  Run a dispatcher (e.g. dispatch workspace 3)
  notify MSG...     Show an on-screen notification
  monitors          List monitors as JSON
  workspaces        List workspaces as JSON
  clients           List windows as JSON
  activewindow      Show the focused window as JSON
  devices           List input devices as JSON
  splash            Print the splash text
  version           Print version information
  help              Show this help

Flags:
  -v, --verbose     Log decode diagnostics to stderr
  -h, --help        Show help
  --version         Show version
`, binaryName)
}
