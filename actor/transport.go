package actor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strings"
	"sync"

	log "github.com/golang/glog"
	"github.com/gogo/protobuf/proto"

	"github.com/mesosphere/pesos-go/mesos"
)

// messageName strips the package qualifier and pointer indirection off a
// message's Go type, producing the bare wire name ("FrameworkRegisteredMessage")
// used in both the HTTP path and Register.
func messageName(msg proto.Message) string {
	t := reflect.TypeOf(msg)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func newListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// Transport carries messages to processes hosted outside this Context,
// mirroring libprocess's wire layer — the thing spec.md calls out as an
// external collaborator specified only at its interface. Bind lets a
// Context hand itself to the transport so inbound wire messages can be
// routed back in via Context.Deliver.
type Transport interface {
	Bind(c *Context)
	Send(ctx context.Context, from, to PID, msg proto.Message) error
}

// LoopbackTransport is the Transport for single-binary tests and the
// in-process master stub: it never leaves the process, and any Send to a
// PID not hosted in the bound Context simply fails the way an unreachable
// remote PID would.
type LoopbackTransport struct {
	mu   sync.RWMutex
	ctx  *Context
}

// NewLoopbackTransport constructs a Transport with no real network
// component, for tests and same-binary wiring.
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{}
}

func (t *LoopbackTransport) Bind(c *Context) {
	t.mu.Lock()
	t.ctx = c
	t.mu.Unlock()
}

func (t *LoopbackTransport) Send(ctx context.Context, from, to PID, msg proto.Message) error {
	t.mu.RLock()
	c := t.ctx
	t.mu.RUnlock()
	if c == nil {
		return fmt.Errorf("actor: loopback transport not bound to a context")
	}
	c.Deliver(to, from, msg)
	return nil
}

// messageCodec decodes a named, wire-encoded message into a fresh
// proto.Message. HTTPTransport is registered with one codec per message
// name it needs to accept, mirroring libprocess's per-message-type HTTP
// install() handlers.
type messageCodec func() proto.Message

// HTTPTransport is a libprocess-style wire transport: every process is
// reachable at POST http://host:port/id/MessageName, body carrying a
// gogo-protobuf-encoded message, mirroring the teacher's own use of
// http.ListenAndServe for its admin and artifact endpoints
// (scheduler/scheduler.go AdminHTTP, the sibling cd9f3d0c main's executor
// artifact server).
type HTTPTransport struct {
	client *http.Client

	mu      sync.RWMutex
	ctx     *Context
	codecs  map[string]messageCodec
	server  *http.Server
}

// NewHTTPTransport constructs an HTTPTransport. Register must be called for
// every message type this binary needs to receive before Listen is called.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{},
		codecs: make(map[string]messageCodec),
	}
}

func (t *HTTPTransport) Bind(c *Context) {
	t.mu.Lock()
	t.ctx = c
	t.mu.Unlock()
}

// Register associates a wire message name (e.g. "FrameworkRegisteredMessage")
// with a factory for a fresh instance of it, so inbound POSTs of that name
// can be decoded.
func (t *HTTPTransport) Register(name string, newMsg messageCodec) {
	t.mu.Lock()
	t.codecs[name] = newMsg
	t.mu.Unlock()
}

// Listen starts accepting inbound messages on addr. It does not block;
// callers that need to wait for shutdown should select on a context done
// channel and call Close.
func (t *HTTPTransport) Listen(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", t.handle)
	srv := &http.Server{Addr: addr, Handler: mux}
	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()
	ln, err := newListener(addr)
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Errorf("actor: http transport serve error: %v", err)
		}
	}()
	return nil
}

func (t *HTTPTransport) Close() error {
	t.mu.RLock()
	srv := t.server
	t.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Close()
}

func (t *HTTPTransport) handle(w http.ResponseWriter, r *http.Request) {
	// Path form: /<to-id>/<MessageName>, and the sender PID is carried as a
	// libprocess-style "Libprocess-From" header.
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		http.Error(w, "malformed path, want /<id>/<MessageName>", http.StatusBadRequest)
		return
	}
	toID, name := parts[0], parts[1]

	t.mu.RLock()
	codec, ok := t.codecs[name]
	ctx := t.ctx
	t.mu.RUnlock()
	if !ok || ctx == nil {
		http.Error(w, fmt.Sprintf("unknown message type %q", name), http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "error reading body", http.StatusBadRequest)
		return
	}
	msg := codec()
	if err := proto.Unmarshal(body, msg); err != nil {
		http.Error(w, "error decoding message", http.StatusBadRequest)
		return
	}

	from, err := mesos.ParseAddress(r.Header.Get("Libprocess-From"))
	if err != nil {
		log.Warningf("actor: http transport: request with unparseable sender, dropping")
		http.Error(w, "missing or malformed Libprocess-From header", http.StatusBadRequest)
		return
	}

	var to PID
	for _, p := range ctx.reg.snapshot() {
		if p.ID == toID {
			to = p
			break
		}
	}
	if to.Empty() {
		http.Error(w, fmt.Sprintf("no such process %q", toID), http.StatusNotFound)
		return
	}

	ctx.Deliver(to, from, msg)
	w.WriteHeader(http.StatusAccepted)
}

func (t *HTTPTransport) Send(ctx context.Context, from, to PID, msg proto.Message) error {
	body, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("actor: encoding %T: %w", msg, err)
	}
	url := fmt.Sprintf("http://%s/%s/%s", to.HostPort(), to.ID, messageName(msg))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Libprocess-From", from.String())
	req.Header.Set("Content-Type", "application/x-protobuf")

	resp, err := t.client.Do(req)
	if err != nil {
		if c := t.boundContext(); c != nil {
			c.BrokenLink(to)
		}
		return fmt.Errorf("actor: sending to %s: %w", to, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("actor: %s rejected message: %s", to, resp.Status)
	}
	return nil
}

func (t *HTTPTransport) boundContext() *Context {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ctx
}
