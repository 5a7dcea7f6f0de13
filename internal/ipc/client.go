package ipc

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	sway "github.com/joshuarubin/go-sway"

	"github.com/watchfire-io/workstyle/internal/models"
)

// Client is a request/reply connection to the compositor.
type Client struct {
	conn   sway.Client
	path   string
	cancel context.CancelFunc
	closed atomic.Bool
}

// Version is the GET_VERSION reply.
type Version struct {
	Major         int
	Minor         int
	Patch         int
	HumanReadable string
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// Dial connects to the compositor socket at path. The connection outlives ctx
// and stays open until Close.
func Dial(ctx context.Context, path string) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// go-sway closes the connection when the context it was opened with ends.
	connCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	conn, err := sway.New(connCtx, sway.WithSocketPath(path))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("cannot open compositor socket %s: %w", path, err)
	}
	return &Client{conn: conn, path: path, cancel: cancel}, nil
}

// Path returns the socket path.
func (c *Client) Path() string {
	return c.path
}

// Close closes the connection.
func (c *Client) Close() error {
	c.closed.Store(true)
	c.cancel()
	return nil
}

func (c *Client) check(ctx context.Context) error {
	if c.closed.Load() {
		return fmt.Errorf("%w: client closed", ErrConnectionClosed)
	}
	return ctx.Err()
}

// transportErr classifies a failed request. Anything but cancellation of ctx
// leaves the connection in an unknown state.
func transportErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %s: %w", ErrConnectionClosed, op, err)
}

// GetTree fetches a fresh layout tree snapshot. Workspace numbers come from a
// GET_WORKSPACES request issued just before the tree.
func (c *Client) GetTree(ctx context.Context) (*models.Node, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	workspaces, err := c.conn.GetWorkspaces(ctx)
	if err != nil {
		return nil, transportErr(ctx, "get_workspaces", err)
	}
	nums := make(map[string]int, len(workspaces))
	for _, ws := range workspaces {
		nums[ws.Name] = int(ws.Num)
	}

	root, err := c.conn.GetTree(ctx)
	if err != nil {
		return nil, transportErr(ctx, "get_tree", err)
	}
	return convertNode(root, nums), nil
}

// RunCommand runs a command. A reply reporting failure yields an error
// wrapping ErrCommandFailed; the connection stays usable in that case.
func (c *Client) RunCommand(ctx context.Context, command string) error {
	if err := c.check(ctx); err != nil {
		return err
	}

	replies, err := c.conn.RunCommand(ctx, command)

	var failures []string
	for _, r := range replies {
		if !r.Success {
			failures = append(failures, r.Error)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrCommandFailed, command, strings.Join(failures, "; "))
	}
	if err != nil {
		return transportErr(ctx, "run_command", err)
	}
	return nil
}

// GetVersion returns the compositor version.
func (c *Client) GetVersion(ctx context.Context) (*Version, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	v, err := c.conn.GetVersion(ctx)
	if err != nil {
		return nil, transportErr(ctx, "get_version", err)
	}
	return &Version{
		Major:         int(v.Major),
		Minor:         int(v.Minor),
		Patch:         int(v.Patch),
		HumanReadable: v.HumanReadable,
	}, nil
}
