// Package connectivity exposes the online/offline signal as an injected
// port instead of ambient global state.
package connectivity

import "context"

// Probe reports whether the process currently has network connectivity.
type Probe interface {
	Online(ctx context.Context) bool
}

// Always reports the process as permanently online. The production
// default; tests substitute their own probe to exercise offline paths.
type Always struct{}

// Online always returns true.
func (Always) Online(context.Context) bool { return true }
