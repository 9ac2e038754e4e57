// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/bassosimone/netstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewConnectFunc populates all fields from Config and the provided logger.
func TestNewConnectFunc(t *testing.T) {
	cfg := NewConfig()
	logger := DefaultSLogger()

	fn := NewConnectFunc(cfg, logger)

	require.NotNil(t, fn)
	assert.NotNil(t, fn.Dialer)
	assert.NotNil(t, fn.Logger)
	assert.NotNil(t, fn.TimeNow)
	assert.NotNil(t, fn.ErrClassifier)
}

// Call dials the connect side of the target and returns a net.Conn or an error.
func TestConnectFunc(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// dialer is the mock dialer to use.
		dialer *netstub.FuncDialer

		// target is the ping target.
		target Target

		// wantAddr is the address we expect the dialer to receive.
		wantAddr string

		// wantErr indicates whether we expect an error.
		wantErr bool
	}{
		{
			name: "successful TCP connect",
			dialer: &netstub.FuncDialer{
				DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
					conn := newMinimalConn()
					conn.CloseFunc = func() error { return nil }
					return conn, nil
				},
			},
			target:   NewTarget("mc.example.com", 0),
			wantAddr: "mc.example.com:25565",
			wantErr:  false,
		},

		{
			name: "dial error",
			dialer: &netstub.FuncDialer{
				DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
					return nil, errors.New("connection refused")
				},
			},
			target:   NewTarget("mc.example.com", 25570),
			wantAddr: "mc.example.com:25570",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotNetwork string
				gotAddr    string
			)
			inner := tt.dialer.DialContextFunc
			tt.dialer.DialContextFunc = func(ctx context.Context, network, address string) (net.Conn, error) {
				gotNetwork = network
				gotAddr = address
				return inner(ctx, network, address)
			}

			cfg := NewConfig()
			cfg.Dialer = tt.dialer

			fn := NewConnectFunc(cfg, DefaultSLogger())
			conn, err := fn.Call(context.Background(), tt.target)

			assert.Equal(t, "tcp", gotNetwork)
			assert.Equal(t, tt.wantAddr, gotAddr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, conn)
			conn.Close()
		})
	}
}

// The dial honors the connect side of the target, not the handshake side.
func TestConnectFuncUsesConnectSide(t *testing.T) {
	var gotAddr string
	cfg := NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			gotAddr = address
			return newMinimalConn(), nil
		},
	}

	target := NewTarget("mc.example.com", 25565)
	target.ConnectHost = "srv.example.net"
	target.ConnectPort = 25570

	fn := NewConnectFunc(cfg, DefaultSLogger())
	_, err := fn.Call(context.Background(), target)

	require.NoError(t, err)
	assert.Equal(t, "srv.example.net:25570", gotAddr)
}

// Call emits connectStart and connectDone events.
func TestConnectFuncLogging(t *testing.T) {
	logger, records := newCapturingLogger()
	cfg := NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			return newMinimalConn(), nil
		},
	}

	fn := NewConnectFunc(cfg, logger)
	_, err := fn.Call(context.Background(), NewTarget("mc.example.com", 0))

	require.NoError(t, err)
	assert.True(t, hasLogEvent(records, "connectStart"))
	assert.True(t, hasLogEvent(records, "connectDone"))
}
