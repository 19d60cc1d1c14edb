package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Close releases repository resources. The backend itself stays open.
func (r *ProfileRepository) Close() error {
	return nil
}

// AddProfile stores the structured profile for a document.
func (r *ProfileRepository) AddProfile(ctx context.Context, documentID uuid.UUID, profile *core.Profile) error {
	value, err := storage.MarshalProfile(profile)
	if err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeProfileKey(documentID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves the profile for a document.
func (r *ProfileRepository) GetProfile(ctx context.Context, documentID uuid.UUID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProfileKey(documentID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalProfile(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListProfiles returns the profiles of every stored document, keyed by
// document ID. The owning ID is recovered from the key suffix.
func (r *ProfileRepository) ListProfiles(ctx context.Context) (map[uuid.UUID]*core.Profile, error) {
	results := make(map[uuid.UUID]*core.Profile)
	prefix := profileRecordPrefix + ":"
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			id, err := uuid.Parse(string(item.Key()[len(prefix):]))
			if err != nil {
				return err
			}
			var profile *core.Profile
			err = item.Value(func(val []byte) error {
				var unmarshalErr error
				profile, unmarshalErr = storage.UnmarshalProfile(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			results[id] = profile
		}
		return nil
	}, false)
	return results, err
}

// DeleteProfile removes the profile for a document. Missing profiles are a
// no-op.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, documentID uuid.UUID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeProfileKey(documentID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
