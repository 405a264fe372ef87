// Package app wires the CLI commands to the hyprwire client library.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rbright/hyprwire/event"
	"github.com/rbright/hyprwire/internal/cli"
	"github.com/rbright/hyprwire/internal/logging"
	"github.com/rbright/hyprwire/internal/version"
	"github.com/rbright/hyprwire/ipc"
	"github.com/rbright/hyprwire/request"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("hyprwire"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("hyprwire"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logger := r.Logger
	if logger == nil {
		logger = logging.New(r.Stderr, parsed.Verbose)
	}

	paths, err := ipc.SocketPaths()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if parsed.Command == cli.CommandWatch {
		return r.commandWatch(ctx, paths.Event, logger)
	}

	client := request.NewClientLogger(paths.Request, logger)

	switch parsed.Command {
	case cli.CommandDispatch:
		return r.action(ctx, client, request.Dispatch{Args: strings.Join(parsed.Args, " ")})
	case cli.CommandNotify:
		return r.action(ctx, client, request.Notify{
			Icon:      request.IconInfo,
			TimeoutMs: 5000,
			Color:     request.RGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff},
			Message:   strings.Join(parsed.Args, " "),
		})
	case cli.CommandMonitors:
		return r.printJSON(client.Monitors(ctx))
	case cli.CommandWorkspaces:
		return r.printJSON(client.Workspaces(ctx))
	case cli.CommandClients:
		return r.printJSON(client.Clients(ctx))
	case cli.CommandActiveWindow:
		return r.printJSON(client.ActiveWindow(ctx))
	case cli.CommandDevices:
		return r.printJSON(client.Devices(ctx))
	case cli.CommandSplash:
		splash, err := client.Splash(ctx)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, strings.TrimRight(splash, "\n"))
		return 0
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) action(ctx context.Context, client *request.Client, cmd request.Command) int {
	if err := client.Do(ctx, cmd); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (r Runner) printJSON(v any, err error) int {
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: encode output: %v\n", err)
		return 1
	}
	fmt.Fprintln(r.Stdout, string(data))
	return 0
}

// commandWatch streams decoded events until the compositor closes the
// socket or the context is cancelled. Undecodable lines are logged and
// skipped; the stream itself stays usable.
func (r Runner) commandWatch(ctx context.Context, eventPath string, logger *slog.Logger) int {
	stream, err := event.ConnectLogger(ctx, eventPath, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer stream.Close()

	// Closing the descriptor is the only way to unblock a pending read.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = stream.Close()
		case <-watchDone:
		}
	}()

	var diag event.Diagnostics
	for {
		ev, err := stream.Next(&diag)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return 0
			}
			if event.IsDecodeError(err) {
				// Per-line failure, already logged with diagnostics.
				continue
			}
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, formatEvent(ev))
	}
}

// formatEvent renders one event as "name fields" for the watch output.
func formatEvent(ev event.Event) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", ev), "event.")

	if group, ok := ev.(event.ToggleGroup); ok {
		var addrs []string
		for addr := range group.Addresses() {
			addrs = append(addrs, addr)
		}
		return fmt.Sprintf("%s {Open:%t Addresses:%s}", name, group.Open, strings.Join(addrs, ","))
	}
	return fmt.Sprintf("%s %+v", name, ev)
}
