// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package storage persists completed risk assessments.
//
// Records are stored as JSON values under "assessment/{id}" keys in an
// embedded BadgerDB. IDs are UUIDv4 strings assigned at save time.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tripfix/tripfix/services/claims/storage/badger"
	"github.com/tripfix/tripfix/services/risk"
)

// keyPrefix namespaces assessment records within the database.
const keyPrefix = "assessment/"

// ErrNotFound is returned when no assessment exists for the given ID.
var ErrNotFound = errors.New("assessment not found")

// Record is a persisted assessment together with the claim facts it was
// produced from.
type Record struct {
	ID           string          `json:"id"`
	Claim        risk.Claim      `json:"claim"`
	Jurisdiction string          `json:"jurisdiction"`
	Assessment   risk.Assessment `json:"assessment"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AssessmentStore reads and writes assessment records.
//
// Thread Safety: Safe for concurrent use; BadgerDB transactions provide
// the isolation.
type AssessmentStore struct {
	db *badger.DB
}

// NewAssessmentStore creates a store over an open database. The store
// does not own the database; the caller closes it.
func NewAssessmentStore(db *badger.DB) (*AssessmentStore, error) {
	if db == nil {
		return nil, errors.New("db must not be nil")
	}
	return &AssessmentStore{db: db}, nil
}

// Save persists the record, assigning an ID and creation time if the
// record does not carry them. Returns the record ID.
func (s *AssessmentStore) Save(ctx context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal assessment record: %w", err)
	}

	err = s.db.WithTxn(ctx, func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(keyPrefix+rec.ID), value)
	})
	if err != nil {
		return "", fmt.Errorf("save assessment %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// Get returns the record with the given ID, or ErrNotFound.
func (s *AssessmentStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record

	err := s.db.WithReadTxn(ctx, func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records in key order. A non-positive limit
// returns all records.
func (s *AssessmentStore) List(ctx context.Context, limit int) ([]Record, error) {
	var records []Record

	err := s.db.WithReadTxn(ctx, func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return records, nil
}

// Delete removes the record with the given ID. Deleting a missing ID is
// not an error.
func (s *AssessmentStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithTxn(ctx, func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(keyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete assessment %s: %w", id, err)
	}
	return nil
}
