/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package connectivity reports whether the device can currently reach the
// hosted store. Remote drivers consult a Signal on every call.
package connectivity

import (
	"context"
	"net"
	"sync/atomic"
	"time"
)

// Signal reports the current online state.
type Signal interface {
	Online() bool
}

// Func adapts a plain function to Signal.
type Func func() bool

// Online calls f.
func (f Func) Online() bool {
	return f()
}

// Always is a Signal that is always online.
var Always Signal = Func(func() bool { return true })

// Never is a Signal that is always offline.
var Never Signal = Func(func() bool { return false })

// Switch is a Signal flipped by the host application, the way a browser
// raises online and offline events. The zero value is offline.
type Switch struct {
	online atomic.Bool
}

// NewSwitch returns a Switch in the given state.
func NewSwitch(online bool) *Switch {
	s := &Switch{}
	s.online.Store(online)
	return s
}

// Online reports the last state set.
func (s *Switch) Online() bool {
	return s.online.Load()
}

// Set changes the state and returns the previous one.
func (s *Switch) Set(online bool) bool {
	return s.online.Swap(online)
}

// Probe is a Signal that dials a TCP address on every call.
type Probe struct {
	Addr    string
	Timeout time.Duration

	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewProbe returns a Probe for addr (host:port). A zero timeout means two seconds.
func NewProbe(addr string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	d := &net.Dialer{}
	return &Probe{Addr: addr, Timeout: timeout, dial: d.DialContext}
}

// Online reports whether a connection to Addr succeeds within Timeout.
func (p *Probe) Online() bool {
	if p.Addr == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	dial := p.dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	conn, err := dial(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
