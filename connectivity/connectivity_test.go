/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connectivity

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitch(t *testing.T) {
	var zero Switch
	assert.False(t, zero.Online())

	s := NewSwitch(true)
	assert.True(t, s.Online())

	prev := s.Set(false)
	assert.True(t, prev)
	assert.False(t, s.Online())
}

func TestFunc(t *testing.T) {
	calls := 0
	f := Func(func() bool {
		calls++
		return calls%2 == 1
	})

	assert.True(t, f.Online())
	assert.False(t, f.Online(), "the function is evaluated on every call")
	assert.True(t, Always.Online())
	assert.False(t, Never.Online())
}

func TestProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	p := NewProbe(addr, time.Second)
	assert.True(t, p.Online())

	require.NoError(t, ln.Close())
	assert.False(t, p.Online(), "a closed listener reads as offline")

	assert.False(t, NewProbe("", 0).Online())
	assert.Equal(t, 2*time.Second, NewProbe("x:1", 0).Timeout)
}
