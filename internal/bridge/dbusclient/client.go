// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dbusclient provides a D-Bus backed implementation of the bridge
// Remote interface. It connects directly to the window manager's private
// D-Bus server (peer to peer, no message bus), or to a message bus when a
// destination name is configured, calls methods on a single object and
// interface, and routes the object's signals to subscribers.
//
// Signals are delivered through a sequential signal handler so handlers
// observe them in the order the transport received them.
package dbusclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// SignalHandler receives the positional arguments of one signal emission.
type SignalHandler func(args []any)

// Options configures Connect.
type Options struct {
	// Address is a D-Bus server address such as "unix:path=/run/user/1000/deskbridge".
	Address    string
	ObjectPath string
	Interface  string

	// Destination is the bus name owning the object. Empty means the
	// address is a peer server: no Hello, no match rules.
	Destination string

	// AnonymousAuth selects the ANONYMOUS mechanism instead of the
	// default EXTERNAL/DBUS_COOKIE_SHA1 negotiation.
	AnonymousAuth bool

	// CallTimeout bounds each method call. Zero waits indefinitely.
	CallTimeout time.Duration

	// DialTimeout bounds dialing and authentication. Zero uses 10s.
	DialTimeout time.Duration
}

// Client implements bridge.Remote over a peer D-Bus connection.
type Client struct {
	conn  *dbus.Conn
	obj   dbus.BusObject
	path  dbus.ObjectPath
	iface string

	callTimeout time.Duration

	mu       sync.RWMutex
	handlers map[string][]SignalHandler

	signals chan *dbus.Signal
	done    chan struct{}
}

func newClient(opts Options) *Client {
	return &Client{
		path:        dbus.ObjectPath(opts.ObjectPath),
		iface:       opts.Interface,
		callTimeout: opts.CallTimeout,
		handlers:    make(map[string][]SignalHandler),
		done:        make(chan struct{}),
	}
}

// Connect dials the peer address, authenticates and starts the signal
// receive loop.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	if opts.Address == "" {
		return nil, errors.New("dbus address is required")
	}
	if !dbus.ObjectPath(opts.ObjectPath).IsValid() {
		return nil, fmt.Errorf("invalid object path %q", opts.ObjectPath)
	}
	if opts.Interface == "" {
		return nil, errors.New("dbus interface is required")
	}

	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dial(dctx, opts)
	if err != nil {
		return nil, err
	}

	c := newClient(opts)
	c.conn = conn
	c.obj = conn.Object(opts.Destination, c.path)
	c.signals = make(chan *dbus.Signal, 64)
	conn.Signal(c.signals)
	if opts.Destination != "" {
		err := conn.AddMatchSignalContext(dctx,
			dbus.WithMatchObjectPath(c.path),
			dbus.WithMatchInterface(c.iface),
		)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("add signal match: %w", err)
		}
	}
	go c.receiveLoop()
	return c, nil
}

// dial connects and authenticates, giving up when ctx expires.
func dial(ctx context.Context, opts Options) (*dbus.Conn, error) {
	type result struct {
		conn *dbus.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := dbus.Dial(opts.Address, dbus.WithSignalHandler(dbus.NewSequentialSignalHandler()))
		if err != nil {
			ch <- result{err: fmt.Errorf("dial %s: %w", opts.Address, err)}
			return
		}
		var methods []dbus.Auth
		if opts.AnonymousAuth {
			methods = []dbus.Auth{dbus.AuthAnonymous()}
		}
		if err := conn.Auth(methods); err != nil {
			_ = conn.Close()
			ch <- result{err: fmt.Errorf("authenticate: %w", err)}
			return
		}
		if opts.Destination != "" {
			if err := conn.Hello(); err != nil {
				_ = conn.Close()
				ch <- result{err: fmt.Errorf("hello: %w", err)}
				return
			}
		}
		ch <- result{conn: conn}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, fmt.Errorf("dial %s: %w", opts.Address, ctx.Err())
	}
}

// Call invokes Interface.method on the remote object and stores the reply
// in ret. A nil ret discards the reply body.
func (c *Client) Call(ctx context.Context, method string, args []any, ret any) error {
	if c.obj == nil {
		return errors.New("dbus connection not initialized")
	}
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	call := c.obj.CallWithContext(ctx, c.iface+"."+method, 0, args...)
	if call.Err != nil {
		return call.Err
	}
	if ret == nil {
		return nil
	}
	return call.Store(ret)
}

// Subscribe registers handler for signal on the configured object and
// interface. Peer connections deliver every emitted signal; on a bus the
// match rule added by Connect covers all members of the interface.
func (c *Client) Subscribe(signal string, handler SignalHandler) error {
	if signal == "" || handler == nil {
		return errors.New("signal name and handler are required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[signal] = append(c.handlers[signal], handler)
	return nil
}

// Close terminates the connection. The receive loop ends once the
// transport closes the signal channel.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	return err
}

func (c *Client) receiveLoop() {
	defer close(c.done)
	for sig := range c.signals {
		c.deliver(sig)
	}
}

// deliver routes one signal to its subscribers. Signals from other objects
// or interfaces are ignored.
func (c *Client) deliver(sig *dbus.Signal) {
	if sig == nil || sig.Path != c.path {
		return
	}
	i := strings.LastIndexByte(sig.Name, '.')
	if i < 0 || sig.Name[:i] != c.iface {
		return
	}
	member := sig.Name[i+1:]

	c.mu.RLock()
	handlers := c.handlers[member]
	c.mu.RUnlock()

	for _, h := range handlers {
		h(sig.Body)
	}
}
