package model

import "sync"

// Conn is the part of a websocket connection a game needs.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a Conn. The websocket allows one writer at a
// time, so every writer of a socket (state broadcasts, error replies) must
// share the same SyncConn.
type SyncConn struct {
	mu        sync.Mutex
	conn      Conn
	lastState uint64
}

// NewSyncConn wraps conn, or returns it unchanged if it is already wrapped.
func NewSyncConn(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *SyncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *SyncConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// wraps reports whether c is, or wraps, conn.
func (c *SyncConn) wraps(conn Conn) bool {
	return c == conn || c.conn == conn
}

// writeState sends a state stamped with version unless a newer one already
// went out. sent is false when the state was dropped as stale.
func (c *SyncConn) writeState(version uint64, v interface{}) (sent bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version <= c.lastState {
		return false, nil
	}
	if err := c.conn.WriteJSON(v); err != nil {
		return true, err
	}
	c.lastState = version
	return true, nil
}
