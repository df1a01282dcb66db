package api

import "errors"

const (
	stable = "stable"
	beta   = "beta"
	alpha  = "alpha"
)

// ReleaseChannel is the OS release channel followed by cluster nodes.
type ReleaseChannel string

func (ch ReleaseChannel) IsValid() error {
	switch string(ch) {
	case stable, beta, alpha:
		return nil
	}
	return errors.New("Invalid Release Channel")
}

func DefaultReleaseChannel() ReleaseChannel {
	return ReleaseChannel(stable)
}
