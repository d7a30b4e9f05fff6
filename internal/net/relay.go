package net

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"GestureBoard/internal/gesture"
)

// Broadcast is the recipient id that reaches every other client.
const Broadcast = "all"

// ErrorResponse is sent back to a client whose frame could not be routed.
type ErrorResponse struct {
	Error string `json:"error"`
}

type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *peer) writeError(msg string) {
	data, _ := json.Marshal(ErrorResponse{Error: msg})
	if err := p.write(data); err != nil {
		log.Printf("[RELAY] error reply to %s failed: %v", p.conn.RemoteAddr(), err)
	}
}

// Relay forwards frames between tracker and viewer clients by id. Clients
// connect to /ws?id=<id>.
type Relay struct {
	clients  map[string]*peer
	mu       sync.RWMutex
	schema   *jsonschema.Schema
	upgrader websocket.Upgrader
}

func NewRelay() (*Relay, error) {
	schema, err := gesture.CompileMessageSchema()
	if err != nil {
		return nil, err
	}
	return &Relay{
		clients: make(map[string]*peer),
		schema:  schema,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the relay's HTTP routes.
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", r)
	return mux
}

func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("[RELAY] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	p := &peer{conn: conn}
	id := req.URL.Query().Get("id")
	if id == "" {
		p.writeError("client id required")
		return
	}
	if id == Broadcast {
		p.writeError(fmt.Sprintf("client id %q is reserved", Broadcast))
		return
	}

	r.add(id, p)
	defer r.remove(id, p)

	for {
		kind, frame, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[RELAY] client %s disconnected: %v", id, err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		r.route(id, p, frame)
	}
}

func (r *Relay) add(id string, p *peer) {
	r.mu.Lock()
	old := r.clients[id]
	r.clients[id] = p
	r.mu.Unlock()
	if old != nil {
		log.Printf("[RELAY] client %s reconnected, dropping old connection", id)
		old.conn.Close()
	}
	log.Printf("[RELAY] client %s connected from %s", id, p.conn.RemoteAddr())
}

func (r *Relay) remove(id string, p *peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[id] == p {
		delete(r.clients, id)
	}
}

func (r *Relay) route(from string, p *peer, frame []byte) {
	msg, err := gesture.ParseMessage(r.schema, frame)
	if err != nil {
		p.writeError(fmt.Sprintf("invalid message format: %v", err))
		return
	}
	if msg.To == Broadcast {
		r.Broadcast(frame, from)
		return
	}
	if msg.To == msg.From {
		p.writeError("sender and recipient cannot be the same")
		return
	}
	if !r.Has(msg.To) {
		p.writeError(fmt.Sprintf("target client %s does not exist", msg.To))
		return
	}
	if err := validate(msg); err != nil {
		p.writeError(err.Error())
		return
	}
	if err := r.Send(msg.To, frame); err != nil {
		log.Printf("[RELAY] forward %s -> %s failed: %v", from, msg.To, err)
	}
}

func validate(m gesture.Message) error {
	switch {
	case m.From == "":
		return errors.New("from field is required")
	case m.To == "":
		return errors.New("to field is required")
	case m.Xval == 0 && m.Yval == 0:
		return errors.New("invalid coordinate values")
	case m.Gestval == "":
		return errors.New("gesture value is required")
	}
	return nil
}

// Has reports whether a client with id is connected.
func (r *Relay) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[id]
	return ok
}

// Clients lists connected ids in order.
func (r *Relay) Clients() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Send writes one frame to client id.
func (r *Relay) Send(id string, frame []byte) error {
	r.mu.RLock()
	p, ok := r.clients[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("client %s not found", id)
	}
	return p.write(frame)
}

// Broadcast writes frame to every client except exclude.
func (r *Relay) Broadcast(frame []byte, exclude string) {
	r.mu.RLock()
	targets := make(map[string]*peer, len(r.clients))
	for id, p := range r.clients {
		if id != exclude {
			targets[id] = p
		}
	}
	r.mu.RUnlock()
	for id, p := range targets {
		if err := p.write(frame); err != nil {
			log.Printf("[RELAY] error sending to %s: %v", id, err)
		}
	}
}
