// SPDX-License-Identifier: EPL-2.0

package mixer

// Mode is the two-state play indicator shown for a channel or the master.
type Mode int

const (
	Stopped Mode = iota
	Playing
)

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}
