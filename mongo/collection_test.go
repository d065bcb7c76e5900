package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/core/writeconcern"
	"github.com/ikmak/mongo-datamover/event"
	"github.com/ikmak/mongo-datamover/internal/testutil"
	"github.com/ikmak/mongo-datamover/mongo"
)

type item struct {
	Name string
	Qty  int
}

func newCollection(t *testing.T, srv *testutil.Server, opts ...mongo.Option) *mongo.Collection {
	t.Helper()
	coll, err := mongo.NewCollection("store", "items", srv.Connection(), testutil.Codec(), opts...)
	require.NoError(t, err)
	return coll
}

func TestNewCollection(t *testing.T) {
	srv := testutil.NewServer()

	_, err := mongo.NewCollection("", "items", srv.Connection(), testutil.Codec())
	assert.Error(t, err)

	coll := newCollection(t, srv)
	assert.Equal(t, "store.items", coll.Namespace().FullName())
}

func TestCollectionInsertOne(t *testing.T) {
	srv := testutil.NewServer()
	coll := newCollection(t, srv)

	res, err := coll.InsertOne(context.Background(), item{Name: "hammer", Qty: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.N)

	require.Len(t, srv.Inserts, 1)
	wi := srv.Inserts[0]
	assert.Equal(t, "items", wi.Insert)
	assert.True(t, wi.Ordered)
	require.Len(t, wi.Documents, 1)
	assert.JSONEq(t, `{"Name":"hammer","Qty":3}`, string(wi.Documents[0]))
}

func TestCollectionInsertMany(t *testing.T) {
	t.Run("splits on the server's batch count", func(t *testing.T) {
		srv := testutil.NewServer()
		srv.Desc.MaxBatchCount = 2
		coll := newCollection(t, srv)

		docs := []interface{}{
			item{Name: "a", Qty: 1},
			item{Name: "b", Qty: 2},
			item{Name: "c", Qty: 3},
		}
		res, err := coll.InsertMany(context.Background(), docs, false, nil, false)
		require.NoError(t, err)
		assert.EqualValues(t, 3, res.N)
		assert.Len(t, srv.Inserts, 2)
		assert.False(t, srv.Inserts[0].Ordered)
	})

	t.Run("per-call write concern overrides the default", func(t *testing.T) {
		srv := testutil.NewServer()
		coll := newCollection(t, srv, mongo.WithWriteConcern(writeconcern.New(writeconcern.W(1))))

		wc := writeconcern.New(writeconcern.WMajority())
		_, err := coll.InsertMany(context.Background(), []interface{}{item{Name: "a"}}, true, wc, false)
		require.NoError(t, err)

		require.Len(t, srv.Inserts, 1)
		require.NotNil(t, srv.Inserts[0].WriteConcern)
		assert.Equal(t, "majority", srv.Inserts[0].WriteConcern.W)
	})

	t.Run("validation bypass is forwarded", func(t *testing.T) {
		srv := testutil.NewServer()
		coll := newCollection(t, srv)

		_, err := coll.InsertMany(context.Background(), []interface{}{item{Name: "a"}}, true, nil, true)
		require.NoError(t, err)
		require.Len(t, srv.Inserts, 1)
		assert.True(t, srv.Inserts[0].BypassDocumentValidation)
	})

	t.Run("session id rides on every command", func(t *testing.T) {
		srv := testutil.NewServer()
		sess, err := session.NewClientSession()
		require.NoError(t, err)
		coll := newCollection(t, srv, mongo.WithSession(sess))

		_, err = coll.InsertMany(context.Background(), []interface{}{item{Name: "a"}}, true, nil, false)
		require.NoError(t, err)

		require.Len(t, srv.Inserts, 1)
		require.NotNil(t, srv.Inserts[0].LSID)
		assert.Equal(t, sess.SessionID, srv.Inserts[0].LSID.ID)
	})

	t.Run("write concern is withheld inside a transaction", func(t *testing.T) {
		srv := testutil.NewServer()
		sess, err := session.NewClientSession()
		require.NoError(t, err)
		require.NoError(t, sess.StartTransaction())

		coll := newCollection(t, srv,
			mongo.WithSession(sess),
			mongo.WithWriteConcern(writeconcern.New(writeconcern.WMajority())))

		_, err = coll.InsertMany(context.Background(), []interface{}{item{Name: "a"}}, true, nil, false)
		require.NoError(t, err)

		require.Len(t, srv.Inserts, 1)
		assert.Nil(t, srv.Inserts[0].WriteConcern)
		assert.EqualValues(t, 1, srv.Inserts[0].TxnNumber)
	})
}

func TestCollectionFind(t *testing.T) {
	t.Run("traverses every batch", func(t *testing.T) {
		srv := testutil.NewServer()
		srv.Batches = [][]codec.Document{
			{codec.Document(`{"Name":"a","Qty":1}`), codec.Document(`{"Name":"b","Qty":2}`)},
			{codec.Document(`{"Name":"c","Qty":3}`)},
		}
		coll := newCollection(t, srv)

		cur, err := coll.Find(context.Background(), nil, mongo.FindOptions{BatchSize: 2})
		require.NoError(t, err)
		defer cur.Close(context.Background())

		var names []string
		for cur.Next(context.Background()) {
			var it item
			require.NoError(t, cur.Decode(&it))
			names = append(names, it.Name)
		}
		require.NoError(t, cur.Err())
		assert.Equal(t, []string{"a", "b", "c"}, names)

		require.Len(t, srv.Finds, 1)
		assert.Equal(t, "items", srv.Finds[0].Find)
		assert.EqualValues(t, 2, srv.Finds[0].BatchSize)
		assert.Len(t, srv.GetMores, 1)
	})

	t.Run("filter and limit are forwarded", func(t *testing.T) {
		srv := testutil.NewServer()
		coll := newCollection(t, srv)

		cur, err := coll.Find(context.Background(), item{Name: "a"}, mongo.FindOptions{Limit: 10})
		require.NoError(t, err)
		defer cur.Close(context.Background())

		require.Len(t, srv.Finds, 1)
		assert.JSONEq(t, `{"Name":"a","Qty":0}`, string(srv.Finds[0].Filter))
		assert.EqualValues(t, 10, srv.Finds[0].Limit)
	})

	t.Run("nil filter matches everything", func(t *testing.T) {
		srv := testutil.NewServer()
		coll := newCollection(t, srv)

		cur, err := coll.Find(context.Background(), nil, mongo.FindOptions{})
		require.NoError(t, err)
		defer cur.Close(context.Background())

		require.Len(t, srv.Finds, 1)
		assert.JSONEq(t, `{}`, string(srv.Finds[0].Filter))
	})
}

func TestCollectionMonitoring(t *testing.T) {
	srv := testutil.NewServer()
	srv.Batches = [][]codec.Document{
		{codec.Document(`{"Name":"a"}`)},
		{codec.Document(`{"Name":"b"}`)},
	}

	var started, succeeded []string
	mon := &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			started = append(started, evt.CommandName)
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			succeeded = append(succeeded, evt.CommandName)
		},
	}
	coll := newCollection(t, srv, mongo.WithMonitor(mon))

	cur, err := coll.Find(context.Background(), nil, mongo.FindOptions{})
	require.NoError(t, err)
	for cur.Next(context.Background()) {
	}
	require.NoError(t, cur.Err())
	require.NoError(t, cur.Close(context.Background()))

	assert.Equal(t, []string{"find", "getMore"}, started)
	assert.Equal(t, started, succeeded)
}
