package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handler receives the lifecycle of one viewer connection. Every call is
// made through the client's scheduler, one at a time, in frame order.
type Handler interface {
	Connected()
	HandleFrame(frame []byte)
	Disconnected(err error)
}

// ViewerURL builds the relay address a viewer subscribes to.
func ViewerURL(relay, viewerID string) (string, error) {
	u, err := url.Parse(relay)
	if err != nil {
		return "", fmt.Errorf("parse relay url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported relay scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	q := u.Query()
	q.Set("id", viewerID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Client is one websocket subscription to the relay.
type Client struct {
	conn     *websocket.Conn
	schedule func(func())
	once     sync.Once
}

// Dial connects to the relay as viewerID. schedule decides where handler
// calls run; nil runs them on the reading goroutine.
func Dial(ctx context.Context, relay, viewerID string, schedule func(func())) (*Client, error) {
	target, err := ViewerURL(relay, viewerID)
	if err != nil {
		return nil, err
	}
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to relay %s: %w", target, err)
	}
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	log.Printf("[WS] connected to %s", target)
	return &Client{conn: conn, schedule: schedule}, nil
}

// Listen reports Connected, then feeds every text frame to h until the
// socket fails or is closed, then reports Disconnected and returns the cause.
func (c *Client) Listen(h Handler) error {
	c.schedule(h.Connected)
	var cause error
	for {
		kind, frame, err := c.conn.ReadMessage()
		if err != nil {
			cause = err
			break
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.schedule(func() { h.HandleFrame(frame) })
	}
	c.schedule(func() { h.Disconnected(cause) })
	if websocket.IsCloseError(cause, websocket.CloseNormalClosure) || errors.Is(cause, net.ErrClosed) {
		return nil
	}
	return cause
}

// Close sends a close frame and releases the socket. Safe to call twice.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}
