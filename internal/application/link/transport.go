package link

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned when sending on a closed transport
var ErrClosed = errors.New("link closed")

// Transport moves encoded packets between two machines
type Transport interface {
	// Send queues a packet for delivery
	Send(data []byte) error
	// Receive returns the next pending packet without blocking
	Receive() ([]byte, bool)
	Close() error
}

const (
	queueSize  = 256
	writeWait  = 2 * time.Second
	acceptWait = 30 * time.Second
)

// WSTransport is a Transport over one websocket connection
type WSTransport struct {
	ws   *websocket.Conn
	send chan []byte
	recv chan []byte
	done chan struct{}
	once sync.Once
}

// NewWSTransport wraps a connection and starts its pumps
func NewWSTransport(ws *websocket.Conn) *WSTransport {
	t := &WSTransport{
		ws:   ws,
		send: make(chan []byte, queueSize),
		recv: make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
	go t.readPump()
	go t.writePump()
	return t
}

// Dial connects to a hosting machine
func Dial(url string) (*WSTransport, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	log.Printf("[Link] connected to %s", url)
	return NewWSTransport(ws), nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Upgrade accepts a joining machine on an HTTP request
func Upgrade(w http.ResponseWriter, r *http.Request) (*WSTransport, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade: %w", err)
	}
	log.Printf("[Link] peer joined from %s", r.RemoteAddr)
	return NewWSTransport(ws), nil
}

// Accept listens on addr and waits for one peer on path
func Accept(ctx context.Context, addr, path string) (*WSTransport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	peer := make(chan *WSTransport, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		t, err := Upgrade(w, r)
		if err != nil {
			log.Printf("[Link] %v", err)
			return
		}
		select {
		case peer <- t:
		default:
			_ = t.Close()
		}
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	log.Printf("[Link] hosting on %s%s", ln.Addr(), path)

	ctx, cancel := context.WithTimeout(ctx, acceptWait)
	defer cancel()
	select {
	case t := <-peer:
		// the listener is not needed once the peer is connected
		_ = ln.Close()
		return t, nil
	case <-ctx.Done():
		_ = srv.Close()
		return nil, fmt.Errorf("failed to accept peer: %w", ctx.Err())
	}
}

// Send queues data for the write pump. A full queue drops the link.
func (t *WSTransport) Send(data []byte) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}

	select {
	case t.send <- data:
		return nil
	default:
		log.Printf("[Link] send queue full, dropping link")
		_ = t.Close()
		return ErrClosed
	}
}

// Receive returns the next packet read by the read pump
func (t *WSTransport) Receive() ([]byte, bool) {
	select {
	case data := <-t.recv:
		return data, true
	default:
		return nil, false
	}
}

// Done is closed once the link is down
func (t *WSTransport) Done() <-chan struct{} {
	return t.done
}

// Close shuts the connection down
func (t *WSTransport) Close() error {
	var err error
	t.once.Do(func() {
		close(t.done)
		err = t.ws.Close()
	})
	return err
}

func (t *WSTransport) readPump() {
	defer func() { _ = t.Close() }()

	for {
		_, message, err := t.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Link] read error: %v", err)
			}
			return
		}

		select {
		case t.recv <- message:
		case <-t.done:
			return
		}
	}
}

func (t *WSTransport) writePump() {
	defer func() { _ = t.Close() }()

	for {
		select {
		case message := <-t.send:
			_ = t.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.ws.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}
		case <-t.done:
			_ = t.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
