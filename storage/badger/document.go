package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Close releases repository resources. The backend itself stays open.
func (r *DocumentRepository) Close() error {
	return nil
}

// AddDocument stores a document record keyed by its ID.
func (r *DocumentRepository) AddDocument(ctx context.Context, record *core.DocumentRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(record.ID)
		value := storage.MarshalDocumentRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a document record by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id uuid.UUID) (*core.DocumentRecord, error) {
	var result *core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocumentRecord(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments returns all stored document records.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error) {
	var results []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.DocumentRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalDocumentRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	return results, err
}

// DeleteDocument removes a document record. Missing records are a no-op.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeDocumentKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readDocumentRecord reads a document record from the transaction.
// Returns nil without error when the key is absent.
func readDocumentRecord(tx *badger.Txn, key []byte) (*core.DocumentRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.DocumentRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalDocumentRecord(val)
		return unmarshalErr
	})
	return record, err
}
