package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service the relay announces.
const ServiceType = "_gestureboard._tcp"

// ErrNoRelay is returned when discovery finds nothing before the timeout.
var ErrNoRelay = errors.New("no relay found on the local network")

// Advertise announces a relay listening on port.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, []string{"GestureBoard relay", "path=/ws"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for a relay and returns its websocket URL.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan error, 1)
	go func() {
		done <- mdns.Query(&mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: timeout,
			Entries: entries,
		})
	}()

	return awaitRelay(ctx, entries, done)
}

// awaitRelay returns the first usable entry. Entries still buffered when the
// query finishes are checked before giving up.
func awaitRelay(ctx context.Context, entries <-chan *mdns.ServiceEntry, done <-chan error) (string, error) {
	for {
		select {
		case e := <-entries:
			if url, ok := relayURL(e); ok {
				return url, nil
			}
		case err := <-done:
			if url, ok := drainRelay(entries); ok {
				return url, nil
			}
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			return "", ErrNoRelay
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func drainRelay(entries <-chan *mdns.ServiceEntry) (string, bool) {
	for {
		select {
		case e, open := <-entries:
			if !open {
				return "", false
			}
			if url, ok := relayURL(e); ok {
				return url, true
			}
		default:
			return "", false
		}
	}
}

func relayURL(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("ws://%s:%d/ws", e.AddrV4, e.Port), true
}

// DiscoverRelay adapts Discover for a Supervisor.
func DiscoverRelay(timeout time.Duration) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		url, err := Discover(ctx, timeout)
		if err == nil {
			log.Printf("[MDNS] found relay at %s", url)
		}
		return url, err
	}
}
