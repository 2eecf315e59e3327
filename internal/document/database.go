package document

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	documentsBucket   = "documents"
	tripSummaryBucket = "trip_summary"

	// The summary bucket holds a single logical row.
	tripSummaryKey = "current"
)

// DB defines the interface for document record persistence.
type DB interface {
	// UpsertDocument inserts or replaces the record stored under key.
	// Re-ingesting the same file keeps the record's original identity.
	UpsertDocument(key string, doc *Document) error

	// GetDocument retrieves a record by its upsert key
	GetDocument(key string) (*Document, error)

	// ListDocuments returns all document records
	ListDocuments() ([]*Document, error)

	// DeleteAllDocuments removes every document record
	DeleteAllDocuments() error

	// SaveTripSummary overwrites the single trip summary record
	SaveTripSummary(summary *TripSummary) error

	// GetTripSummary retrieves the trip summary
	GetTripSummary() (*TripSummary, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(documentsBucket)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(tripSummaryBucket)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// UpsertDocument inserts or replaces the record stored under key. When a
// record already exists, the new one inherits its ID and CreatedAt so
// repeated runs never mint a new identity for the same source file.
func (b *BoltDB) UpsertDocument(key string, doc *Document) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))

		if existing := bucket.Get([]byte(key)); existing != nil {
			var prior Document
			if err := json.Unmarshal(existing, &prior); err == nil {
				doc.ID = prior.ID
				doc.CreatedAt = prior.CreatedAt
			}
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling document: %w", err)
		}
		return bucket.Put([]byte(key), data)
	})
}

// GetDocument retrieves a record by its upsert key
func (b *BoltDB) GetDocument(key string) (*Document, error) {
	var doc *Document
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		data := bucket.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("document not found: %s", key)
		}
		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all document records in key order
func (b *BoltDB) ListDocuments() ([]*Document, error) {
	docs := make([]*Document, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshaling document: %w", err)
			}
			docs = append(docs, &doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteAllDocuments removes every document record
func (b *BoltDB) DeleteAllDocuments() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(documentsBucket)); err != nil {
			return fmt.Errorf("deleting documents bucket: %w", err)
		}
		if _, err := tx.CreateBucket([]byte(documentsBucket)); err != nil {
			return fmt.Errorf("recreating documents bucket: %w", err)
		}
		return nil
	})
}

// SaveTripSummary overwrites the single trip summary record
func (b *BoltDB) SaveTripSummary(summary *TripSummary) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tripSummaryBucket))
		data, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshaling trip summary: %w", err)
		}
		return bucket.Put([]byte(tripSummaryKey), data)
	})
}

// GetTripSummary retrieves the trip summary
func (b *BoltDB) GetTripSummary() (*TripSummary, error) {
	var summary *TripSummary
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tripSummaryBucket))
		data := bucket.Get([]byte(tripSummaryKey))
		if data == nil {
			return fmt.Errorf("trip summary not found")
		}
		return json.Unmarshal(data, &summary)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
