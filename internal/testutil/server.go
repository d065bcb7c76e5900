package testutil

import (
	"context"
	"fmt"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/core/description"
	"github.com/ikmak/mongo-datamover/core/result"
	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/core/writeconcern"
)

// Wire mirrors of the command bodies, decoded with the JSON codec. Field
// names line up with the exported fields of the command body structs.
type (
	// WireInsert is the decoded form of an insert command.
	WireInsert struct {
		Insert                   string
		Documents                []codec.Document
		Ordered                  bool
		BypassDocumentValidation bool
		WriteConcern             *writeconcern.View
		LSID                     *session.View
		TxnNumber                int64
	}

	// WireFind is the decoded form of a find command.
	WireFind struct {
		Find        string
		Filter      codec.Document
		BatchSize   int32
		Limit       int32
		SingleBatch bool
	}

	// WireGetMore is the decoded form of a getMore command.
	WireGetMore struct {
		GetMore    int64
		Collection string
		BatchSize  int32
	}

	// WireKillCursors is the decoded form of a killCursors command.
	WireKillCursors struct {
		KillCursors string
		Cursors     []int64
	}
)

// ServerDesc returns a server description with default limits and a wire
// version that supports batch writes and sessions.
func ServerDesc() description.Server {
	desc := description.NewServer()
	desc.SessionsSupported = true
	desc.WireVersion = &description.VersionRange{Min: 0, Max: 8}
	return desc
}

// Server is a scripted in-memory server. It decodes each command with the
// JSON codec, records it, and serves canned cursor batches and insert
// results.
type Server struct {
	Desc description.Server

	// CursorID is the id issued while batches remain unserved.
	CursorID int64
	// Batches are served in order: the first by find, the rest by getMore.
	Batches [][]codec.Document

	// InsertFunc overrides the default insert behavior (ok with n set to
	// the batch length). Returning an error simulates a transport failure.
	InsertFunc func(n int, w WireInsert) (result.Write, error)
	// GetMoreErr, when set, fails every getMore.
	GetMoreErr error
	// KillErr, when set, fails every killCursors.
	KillErr error

	// Recorded traffic.
	Names      []string
	Inserts    []WireInsert
	Finds      []WireFind
	GetMores   []WireGetMore
	Killed     []int64

	pos int
}

// NewServer creates a scripted server with the default description.
func NewServer() *Server {
	return &Server{Desc: ServerDesc(), CursorID: 42}
}

// Connection returns a connection.Connection backed by the server.
func (s *Server) Connection() connection.Connection {
	return &conn{s: s}
}

type conn struct {
	s *Server
}

func (c *conn) Description() description.Server { return c.s.Desc }

func (c *conn) RunCommand(_ context.Context, db string, name string, cmd codec.Document) (codec.Document, error) {
	s := c.s
	s.Names = append(s.Names, name)
	cdc := Codec()

	switch name {
	case "insert":
		var wi WireInsert
		if err := cdc.Unmarshal(cmd, &wi); err != nil {
			return nil, err
		}
		s.Inserts = append(s.Inserts, wi)

		res := result.Write{OK: 1, N: int64(len(wi.Documents))}
		if s.InsertFunc != nil {
			var err error
			res, err = s.InsertFunc(len(s.Inserts)-1, wi)
			if err != nil {
				return nil, err
			}
		}
		return cdc.Marshal(res)

	case "find":
		var wf WireFind
		if err := cdc.Unmarshal(cmd, &wf); err != nil {
			return nil, err
		}
		s.Finds = append(s.Finds, wf)

		res := result.Cursor{OK: 1}
		res.Cursor.NS = db + "." + wf.Find
		res.Cursor.FirstBatch = s.serveBatch()
		res.Cursor.ID = s.liveID()
		return cdc.Marshal(res)

	case "getMore":
		if s.GetMoreErr != nil {
			return nil, s.GetMoreErr
		}
		var wg WireGetMore
		if err := cdc.Unmarshal(cmd, &wg); err != nil {
			return nil, err
		}
		s.GetMores = append(s.GetMores, wg)
		if wg.GetMore != s.CursorID {
			return nil, fmt.Errorf("getMore for unknown cursor %d", wg.GetMore)
		}

		res := result.Cursor{OK: 1}
		res.Cursor.NS = db + "." + wg.Collection
		res.Cursor.NextBatch = s.serveBatch()
		res.Cursor.ID = s.liveID()
		return cdc.Marshal(res)

	case "killCursors":
		if s.KillErr != nil {
			return nil, s.KillErr
		}
		var wk WireKillCursors
		if err := cdc.Unmarshal(cmd, &wk); err != nil {
			return nil, err
		}
		s.Killed = append(s.Killed, wk.Cursors...)
		return cdc.Marshal(result.KillCursors{OK: 1, CursorsKilled: wk.Cursors})

	default:
		return nil, fmt.Errorf("unexpected command %q", name)
	}
}

func (s *Server) serveBatch() []codec.Document {
	if s.pos >= len(s.Batches) {
		return nil
	}
	batch := s.Batches[s.pos]
	s.pos++
	if batch == nil {
		batch = []codec.Document{}
	}
	return batch
}

func (s *Server) liveID() int64 {
	if s.pos < len(s.Batches) {
		return s.CursorID
	}
	return 0
}
