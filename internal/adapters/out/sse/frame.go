// Package sse fans order events out to long-lived viewer connections.
//
// The Broadcaster owns every Subscription. Writers call Publish, which encodes
// the payload once and performs one non-blocking send per subscriber. A viewer
// whose buffer is full is dropped instead of slowing the writer down. Each
// subscription also receives a periodic comment frame so idle proxies keep the
// connection open.
//
// Frames follow the text/event-stream format:
//
//	event: order_created
//	data: {"id":"1",...}
//
//	: heartbeat
package sse

import (
	"encoding/json"
	"fmt"
	"strings"
)

const EventConnected = "connected"

var heartbeatFrame = []byte(": heartbeat\n\n")

// EncodeEvent renders a named event with a JSON data line.
func EncodeEvent(name string, payload any) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return nil, fmt.Errorf("invalid event name %q", name)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", name, err)
	}

	frame := make([]byte, 0, len(name)+len(data)+16)
	frame = append(frame, "event: "...)
	frame = append(frame, name...)
	frame = append(frame, "\ndata: "...)
	frame = append(frame, data...)
	frame = append(frame, "\n\n"...)
	return frame, nil
}

// HeartbeatFrame returns the keep-alive comment frame.
func HeartbeatFrame() []byte {
	return append([]byte(nil), heartbeatFrame...)
}
