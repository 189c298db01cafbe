package flow

import (
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

var errNoClipboard = errors.New("clipboard unavailable")

// ProtocolIDLength is the number of characters in a protocol id.
const ProtocolIDLength = 9

// NewProtocolID returns a random uppercase base-36 string of
// ProtocolIDLength characters. It is for display only.
func NewProtocolID() string {
	id := uuid.New()
	s := strings.ToUpper(new(big.Int).SetBytes(id[:]).Text(36))
	for len(s) < ProtocolIDLength {
		s = "0" + s
	}
	return s[len(s)-ProtocolIDLength:]
}

// Snapshot is a read-only copy of everything the presentation layer needs to
// render the current screen.
type Snapshot struct {
	Screen        Screen
	CanGoBack     bool
	Credentials   Credentials
	MissingFields []string

	RunID    RunID
	Target   Screen
	Progress int
	Log      []string
	Waiting  bool // run exists but telemetry has not arrived yet

	Copy             CopyIndicator
	PaymentReference string
	ProtocolID       string
}

// Snapshot captures the controller state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Screen:           c.screen,
		CanGoBack:        c.CanGoBack(),
		Credentials:      c.credentials,
		MissingFields:    append([]string(nil), c.submitErrs...),
		Copy:             c.copy,
		PaymentReference: c.reference,
		ProtocolID:       c.protocolID,
	}
	if c.run != nil {
		s.RunID = c.run.ID
		s.Target = c.run.Target
		s.Progress = c.run.Progress
		s.Log = append([]string(nil), c.run.Log...)
		s.Waiting = !c.run.Begun()
	}
	return s
}
