package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// ActivationInstantProvider reports when a part or view was last activated.
// Instants are monotonic; 0 means never activated. The engine queries it on
// demand and never caches the result.
type ActivationInstantProvider interface {
	ActivationInstant(id string) int64
}

// ActivationFunc adapts a function to ActivationInstantProvider.
type ActivationFunc func(id string) int64

func (f ActivationFunc) ActivationInstant(id string) int64 { return f(id) }

// ZeroActivation reports every id as never activated.
var ZeroActivation ActivationInstantProvider = ActivationFunc(func(string) int64 { return 0 })

// IDGenerator produces ids the engine assigns on its own.
type IDGenerator interface {
	NodeID() string
	NavigationID() string
}

// UUIDs generates random UUID based ids.
type UUIDs struct{}

func (UUIDs) NodeID() string       { return "node." + uuid.NewString() }
func (UUIDs) NavigationID() string { return uuid.NewString() }

// PathResolver turns navigation commands into a concrete path, optionally
// relative to the path of another view.
type PathResolver interface {
	Resolve(commands, relativeTo []grid.Segment) ([]grid.Segment, error)
}

// SegmentResolver is the default PathResolver. A command starting with "/"
// is absolute; "." is ignored and ".." drops the previous segment. Commands
// containing slashes are split, their parameters stay with the last piece.
type SegmentResolver struct{}

func (SegmentResolver) Resolve(commands, relativeTo []grid.Segment) ([]grid.Segment, error) {
	resolved := make([]grid.Segment, 0, len(relativeTo)+len(commands))
	if len(commands) == 0 || !strings.HasPrefix(commands[0].Path, "/") {
		for _, s := range relativeTo {
			resolved = append(resolved, grid.Segment{Path: s.Path, Params: s.Params})
		}
	}

	for _, cmd := range commands {
		pieces := strings.Split(strings.Trim(cmd.Path, "/"), "/")
		for i, piece := range pieces {
			switch piece {
			case "", ".":
				continue
			case "..":
				if len(resolved) == 0 {
					return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("path %q navigates above the root", grid.PathString(commands))}
				}
				resolved = resolved[:len(resolved)-1]
			default:
				seg := grid.Segment{Path: piece}
				if i == len(pieces)-1 {
					seg.Params = cmd.Params
				}
				resolved = append(resolved, seg)
			}
		}
	}
	if len(resolved) == 0 {
		return nil, nil
	}
	return resolved, nil
}

// Env carries the collaborators of a layout. Zero fields are replaced with
// defaults by New.
type Env struct {
	Activation ActivationInstantProvider
	IDs        IDGenerator
	Paths      PathResolver
	Logger     *slog.Logger
}

func (e Env) withDefaults() Env {
	if e.Activation == nil {
		e.Activation = ZeroActivation
	}
	if e.IDs == nil {
		e.IDs = UUIDs{}
	}
	if e.Paths == nil {
		e.Paths = SegmentResolver{}
	}
	if e.Logger == nil {
		e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}
