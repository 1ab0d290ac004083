package poller

import "time"

// State is the refresh-cycle state machine position.
type State string

const (
	StateIdle             State = "idle"
	StateAuthenticating   State = "authenticating"
	StateFetchingArtifact State = "fetching_artifact"
	StateDisplaying       State = "displaying"
	StateRetryScheduled   State = "retry_scheduled"
	StateError            State = "error"
)

// Human-readable status lines. The pass view never fails silently; these
// always reflect the current state.
const (
	statusIdle         = "stopped"
	statusNeedIdentity = "no OpenID configured"
	statusUpdating     = "updating pass…"
	statusUpdated      = "pass updated"
	statusRetrying     = "update failed, retrying"
	statusFailed       = "update failed"
)

// Snapshot is the externally visible controller state. Copies are
// handed to listeners and the status endpoint; the controller never
// shares its internal struct.
type Snapshot struct {
	State  State  `json:"state"`
	Status string `json:"status"`
	// Detail carries the raw diagnostic text on hard failure, verbatim
	// from the upstream response.
	Detail string `json:"detail,omitempty"`

	Payload  string `json:"-"`
	ImagePNG []byte `json:"-"`

	RenderedAt    time.Time     `json:"rendered_at,omitzero"`
	NextRefreshAt time.Time     `json:"next_refresh_at,omitzero"`
	CycleDuration time.Duration `json:"-"`

	// ScreenHint is true exactly on a transition into Displaying: the
	// moment presentation should push brightness up for scanning.
	ScreenHint bool `json:"-"`
}

// Listener receives every snapshot change. Listeners are invoked
// outside the controller lock and must not block for long.
type Listener func(Snapshot)
