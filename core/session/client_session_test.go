package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSession(t *testing.T) {
	t.Run("fresh sessions have distinct ids", func(t *testing.T) {
		a, err := NewClientSession()
		require.NoError(t, err)
		b, err := NewClientSession()
		require.NoError(t, err)
		assert.NotEqual(t, a.SessionID, b.SessionID)
		assert.Equal(t, a.SessionID, a.View().ID)
	})

	t.Run("transaction lifecycle", func(t *testing.T) {
		sess, err := NewClientSession()
		require.NoError(t, err)
		assert.False(t, sess.TransactionRunning())

		require.NoError(t, sess.StartTransaction())
		assert.Equal(t, Starting, sess.TransactionState())
		assert.True(t, sess.TransactionRunning())
		assert.EqualValues(t, 1, sess.TxnNumber)

		sess.ApplyCommand()
		assert.Equal(t, InProgress, sess.TransactionState())
		assert.True(t, sess.TransactionRunning())

		require.NoError(t, sess.CommitTransaction())
		assert.False(t, sess.TransactionRunning())
	})

	t.Run("txn number increments per transaction", func(t *testing.T) {
		sess, err := NewClientSession()
		require.NoError(t, err)

		require.NoError(t, sess.StartTransaction())
		require.NoError(t, sess.AbortTransaction())
		require.NoError(t, sess.StartTransaction())
		assert.EqualValues(t, 2, sess.TxnNumber)
	})

	t.Run("nested start rejected", func(t *testing.T) {
		sess, err := NewClientSession()
		require.NoError(t, err)

		require.NoError(t, sess.StartTransaction())
		assert.Equal(t, ErrTransactInProgress, sess.StartTransaction())
	})

	t.Run("commit and abort need a transaction", func(t *testing.T) {
		sess, err := NewClientSession()
		require.NoError(t, err)

		assert.Equal(t, ErrNoTransactStarted, sess.CommitTransaction())
		assert.Equal(t, ErrNoTransactStarted, sess.AbortTransaction())
	})

	t.Run("nil session never reports a running transaction", func(t *testing.T) {
		var sess *Client
		assert.False(t, sess.TransactionRunning())
	})

	t.Run("end session", func(t *testing.T) {
		sess, err := NewClientSession()
		require.NoError(t, err)
		assert.False(t, sess.Terminated())
		sess.EndSession()
		assert.True(t, sess.Terminated())
	})
}
