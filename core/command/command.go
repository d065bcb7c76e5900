// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package command

import (
	"errors"
	"strings"

	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/core/writeconcern"
)

// Namespace identifies a collection within a database.
type Namespace struct {
	DB         string
	Collection string
}

// NewNamespace creates a Namespace from the given database and collection
// names. Neither can be empty, and the database name may not contain a "."
// or " " character.
func NewNamespace(db string, collection string) (Namespace, error) {
	ns := Namespace{DB: db, Collection: collection}
	return ns, ns.Validate()
}

// ParseNamespace parses a full namespace string into a Namespace. The string
// must contain at least one ".", the first of which separates the database
// from the collection name.
func ParseNamespace(fullName string) (Namespace, error) {
	i := strings.Index(fullName, ".")
	if i == -1 {
		return Namespace{}, errors.New("namespace must contain a '.'")
	}
	return NewNamespace(fullName[:i], fullName[i+1:])
}

// FullName returns the "db.collection" form of the namespace.
func (ns Namespace) FullName() string {
	return ns.DB + "." + ns.Collection
}

// Validate validates the namespace.
func (ns Namespace) Validate() error {
	if ns.DB == "" {
		return errors.New("database name cannot be empty")
	}
	if strings.ContainsAny(ns.DB, ". ") {
		return errors.New("database name cannot contain '.' or ' '")
	}
	if ns.Collection == "" {
		return errors.New("collection name cannot be empty")
	}
	return nil
}

// concernView returns the marshalable write concern for a command envelope,
// or nil when the field must be omitted. The server rejects a per-command
// write concern while the session has a multi-statement transaction running.
func concernView(wc *writeconcern.WriteConcern, sess *session.Client) (*writeconcern.View, error) {
	if wc == nil || sess.TransactionRunning() {
		return nil, nil
	}

	view, err := wc.View()
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// sessionView returns the marshalable lsid for a command envelope, or nil
// when no session is attached.
func sessionView(sess *session.Client) *session.View {
	if sess == nil {
		return nil
	}
	view := sess.View()
	return &view
}

// txnNumber returns the transaction number to attach, or zero when the
// session has no transaction running.
func txnNumber(sess *session.Client) int64 {
	if !sess.TransactionRunning() {
		return 0
	}
	return sess.TxnNumber
}
