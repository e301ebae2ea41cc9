package spritekit

import (
	"bytes"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// PicturesBucket is the bbolt bucket holding encoded image files.
const PicturesBucket = "pictures"

// ResourceFile is a Decoder backed by a packed bbolt resource file. Keys are
// slash-separated paths relative to the directory that was packed, so a
// manifest can be applied unchanged to either the loose files or the pack.
type ResourceFile struct {
	db *bolt.DB
}

// OpenResourceFile opens a resource file written by PackResources for
// reading.
func OpenResourceFile(path string) (*ResourceFile, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("spritekit: open resource file %s: %w", path, err)
	}
	return &ResourceFile{db: db}, nil
}

// Close releases the underlying database.
func (rf *ResourceFile) Close() error {
	return rf.db.Close()
}

// Decode implements Decoder. A missing key reports fs.ErrNotExist.
func (rf *ResourceFile) Decode(path string) (image.Image, error) {
	key := []byte(filepath.ToSlash(path))
	var img image.Image
	err := rf.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte(PicturesBucket))
		if buck == nil {
			return fmt.Errorf("the %s bucket not found", PicturesBucket)
		}
		data := buck.Get(key)
		if data == nil {
			return fmt.Errorf("picture %q: %w", path, fs.ErrNotExist)
		}
		var err error
		img, err = decodeReader(bytes.NewReader(data), path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Keys returns every stored picture key.
func (rf *ResourceFile) Keys() ([]string, error) {
	var keys []string
	err := rf.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte(PicturesBucket))
		if buck == nil {
			return nil
		}
		return buck.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// PackResources stores the files (paths relative to root) in the resource
// file at dbPath, creating it if needed. Every file must decode as an image.
func PackResources(dbPath, root string, files []string) error {
	db, err := bolt.Open(dbPath, 0o666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("spritekit: open resource file %s: %w", dbPath, err)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		buck, err := tx.CreateBucketIfNotExists([]byte(PicturesBucket))
		if err != nil {
			return err
		}
		for _, rel := range files {
			data, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				return fmt.Errorf("spritekit: pack %s: %w", rel, err)
			}
			if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
				return fmt.Errorf("spritekit: pack %s: %w", rel, err)
			}
			if err := buck.Put([]byte(filepath.ToSlash(rel)), data); err != nil {
				return err
			}
		}
		return nil
	})
}
