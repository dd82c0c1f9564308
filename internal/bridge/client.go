// Package bridge is the typed client for the external cart backend.
// Every cart mutation in the application goes through here; the cart
// state machine itself lives on the other side of the socket and this
// package neither validates nor caches what passes through it.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/anpos/pos-client/internal/config"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024 * 1024 // 1MB
)

// ErrClosed reports that the bridge connection is gone
var ErrClosed = errors.New("bridge: connection closed")

// RemoteError carries a backend failure through unmodified
type RemoteError struct {
	Cmd     string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// request is the envelope for one invocation
type request struct {
	ID     string      `json:"id"`
	Cmd    string      `json:"cmd"`
	Params interface{} `json:"params"`
}

// response is the envelope the backend answers with; exactly one of
// Result and Error is set
type response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

// Client is a request/response cart bridge over a single websocket.
// Calls are correlated by id, so callers may issue them concurrently;
// ordering between concurrent calls is whatever the backend makes it.
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	mu       sync.Mutex
	pending  map[string]chan response
	closeErr error

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the cart backend and authenticates with a bearer
// token derived from the shared secret
func Dial(cfg config.Bridge, logger *zap.Logger) (*Client, error) {
	token, err := bearerToken(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build bridge token: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.Dial(cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial cart backend: %w", err)
	}

	c := &Client{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]chan response),
		done:    make(chan struct{}),
	}

	go c.readPump()
	go c.pingLoop()

	return c, nil
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	return nil
}

// call sends one envelope and blocks until its response, ctx
// cancellation or connection loss. It applies no deadline of its own
// beyond the transport write deadline.
func (c *Client) call(ctx context.Context, cmd string, params, out interface{}) error {
	id := uuid.NewString()
	ch := make(chan response, 1)

	c.mu.Lock()
	if c.closeErr != nil {
		err := c.closeErr
		c.mu.Unlock()
		return err
	}
	c.pending[id] = ch
	c.mu.Unlock()

	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteJSON(request{ID: id, Cmd: cmd, Params: params})
	c.writeMu.Unlock()
	if err != nil {
		c.unregister(id)
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return &RemoteError{Cmd: cmd, Message: *resp.Error}
		}
		if out != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, out); err != nil {
				return fmt.Errorf("failed to decode %s response: %w", cmd, err)
			}
		}
		return nil

	case <-ctx.Done():
		c.unregister(id)
		return ctx.Err()

	case <-c.done:
		c.mu.Lock()
		err := c.closeErr
		c.mu.Unlock()
		if err == nil {
			err = ErrClosed
		}
		return err
	}
}

func (c *Client) unregister(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("bridge read failed", zap.Error(err))
			}
			c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		var resp response
		if err := json.Unmarshal(message, &resp); err != nil {
			c.logger.Warn("bridge received malformed frame", zap.Error(err))
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()

		if !ok {
			c.logger.Warn("bridge response without matching request", zap.String("id", resp.ID))
			continue
		}
		ch <- resp
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
				return
			}
		case <-c.done:
			return
		}
	}
}

// shutdown records the terminal error, wakes every in-flight call and
// closes the socket
func (c *Client) shutdown(err error) {
	c.mu.Lock()
	if c.closeErr == nil {
		c.closeErr = err
	}
	c.pending = make(map[string]chan response)
	c.mu.Unlock()

	c.closeOnce.Do(func() {
		close(c.done)
	})
	c.conn.Close()
}

// bearerToken signs the terminal identity for the backend the same way
// a server-side login would mint a session token
func bearerToken(cfg config.Bridge) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   cfg.ClientID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.TokenTTLMinutes) * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}
