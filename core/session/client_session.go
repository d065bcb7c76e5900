package session

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNoTransactStarted is returned when a transaction operation is attempted
// with no transaction running.
var ErrNoTransactStarted = errors.New("no transaction started")

// ErrTransactInProgress is returned when a transaction is started while
// another one is already running on the session.
var ErrTransactInProgress = errors.New("transaction already in progress")

// TransactionState indicates the state of the session's transaction.
type TransactionState uint8

// These constants are the valid states for a transaction.
const (
	None TransactionState = iota
	Starting
	InProgress
	Committed
	Aborted
)

// Client is a session for clients to run commands. It carries the session id
// attached to every command and the transaction state consulted when deciding
// whether a per-command write concern may be sent.
type Client struct {
	SessionID uuid.UUID
	TxnNumber int64

	state      TransactionState
	terminated bool
}

// NewClientSession creates a Client with a freshly generated session id.
func NewClientSession() (*Client, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return &Client{SessionID: id}, nil
}

// StartTransaction initiates a multi-statement transaction on this session.
func (c *Client) StartTransaction() error {
	if c.TransactionRunning() {
		return ErrTransactInProgress
	}

	c.TxnNumber++
	c.state = Starting
	return nil
}

// ApplyCommand transitions a Starting transaction to InProgress. It must be
// called whenever this session is used to send a command to the server.
func (c *Client) ApplyCommand() {
	if c.state == Starting {
		c.state = InProgress
	}
}

// CommitTransaction commits the running transaction.
func (c *Client) CommitTransaction() error {
	if !c.TransactionRunning() {
		return ErrNoTransactStarted
	}

	c.state = Committed
	return nil
}

// AbortTransaction aborts the running transaction.
func (c *Client) AbortTransaction() error {
	if !c.TransactionRunning() {
		return ErrNoTransactStarted
	}

	c.state = Aborted
	return nil
}

// TransactionState returns the state of the session's transaction.
func (c *Client) TransactionState() TransactionState {
	return c.state
}

// TransactionRunning reports whether a multi-statement transaction is active
// on this session. The server rejects a per-command write concern while one
// is, so command builders omit the field in that case.
func (c *Client) TransactionRunning() bool {
	return c != nil && (c.state == Starting || c.state == InProgress)
}

// EndSession ends the session.
func (c *Client) EndSession() {
	c.terminated = true
}

// Terminated reports whether EndSession has been called.
func (c *Client) Terminated() bool {
	return c.terminated
}

// View is the codec-marshalable form of the session metadata, attached to a
// command envelope as its lsid field.
type View struct {
	ID uuid.UUID `bson:"id"`
}

// View returns the marshalable form of the session metadata.
func (c *Client) View() View {
	return View{ID: c.SessionID}
}
