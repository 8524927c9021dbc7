package repositories

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/checkmarble/heatmap-backend/models"
)

const datasetRecordExtension = ".json"

var unsafeKeyCharacters = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// datasetRecord is the document stored for every (filename, sheet) pair.
type datasetRecord struct {
	Filename   string      `json:"filename"`
	SheetName  null.String `json:"sheetName"`
	Content    string      `json:"content"`
	UploadedAt time.Time   `json:"uploadedAt"`
}

// BlobDatasetStore keeps one record per key in a bucket and rebuilds listings by reading every
// record. Meant for local development on a single instance.
type BlobDatasetStore struct {
	bucket *blob.Bucket
	now    func() time.Time
}

func NewBlobDatasetStore(bucket *blob.Bucket) *BlobDatasetStore {
	return &BlobDatasetStore{
		bucket: bucket,
		now:    time.Now,
	}
}

// OpenBlobDatasetStore opens a bucket url such as "file://./.local-storage?create_dir=true" or "mem://".
func OpenBlobDatasetStore(ctx context.Context, bucketUrl string) (*BlobDatasetStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}
	return NewBlobDatasetStore(bucket), nil
}

func (store *BlobDatasetStore) Close() error {
	return store.bucket.Close()
}

// objectKey is readable and collision free: the sanitized names are followed by a digest of the raw key.
func objectKey(key models.DatasetKey) string {
	digest := sha256.Sum256([]byte(key.Filename + "\x00" + key.Sheet))

	var b strings.Builder
	b.WriteString(unsafeKeyCharacters.ReplaceAllString(key.Filename, "_"))
	if key.HasSheet() {
		b.WriteString("_")
		b.WriteString(unsafeKeyCharacters.ReplaceAllString(key.Sheet, "_"))
	}
	b.WriteString("-")
	b.WriteString(hex.EncodeToString(digest[:6]))
	b.WriteString(datasetRecordExtension)
	return b.String()
}

func (store *BlobDatasetStore) readRecord(ctx context.Context, objectKey string) (datasetRecord, error) {
	data, err := store.bucket.ReadAll(ctx, objectKey)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return datasetRecord{}, errors.Wrapf(models.NotFoundError, "no record %s", objectKey)
	}
	if err != nil {
		return datasetRecord{}, errors.Wrapf(err, "failed to read record %s", objectKey)
	}

	var record datasetRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return datasetRecord{}, errors.Wrapf(err, "failed to decode record %s", objectKey)
	}
	return record, nil
}

// scan calls fn for every stored record.
func (store *BlobDatasetStore) scan(ctx context.Context, fn func(objectKey string, record datasetRecord) error) error {
	iter := store.bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to list records")
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, datasetRecordExtension) {
			continue
		}

		record, err := store.readRecord(ctx, obj.Key)
		if errors.Is(err, models.NotFoundError) {
			// deleted between listing and reading
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(obj.Key, record); err != nil {
			return err
		}
	}
}

func (store *BlobDatasetStore) ListFiles(ctx context.Context) ([]string, error) {
	lastUpload := make(map[string]time.Time)
	err := store.scan(ctx, func(_ string, record datasetRecord) error {
		if uploadedAt, ok := lastUpload[record.Filename]; !ok || record.UploadedAt.After(uploadedAt) {
			lastUpload[record.Filename] = record.UploadedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(lastUpload))
	for filename := range lastUpload {
		files = append(files, filename)
	}
	slices.SortFunc(files, func(a, b string) int {
		if c := lastUpload[b].Compare(lastUpload[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return files, nil
}

func (store *BlobDatasetStore) ListSheets(ctx context.Context, filename string) ([]string, error) {
	sheets := make([]string, 0)
	err := store.scan(ctx, func(_ string, record datasetRecord) error {
		if record.Filename == filename && record.SheetName.Valid && record.SheetName.String != "" {
			sheets = append(sheets, record.SheetName.String)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(sheets)
	return slices.Compact(sheets), nil
}

func (store *BlobDatasetStore) GetContent(ctx context.Context, key models.DatasetKey) (string, error) {
	record, err := store.readRecord(ctx, objectKey(key))
	if err != nil {
		return "", err
	}
	if record.Filename != key.Filename || record.SheetName.ValueOrZero() != key.Sheet {
		return "", errors.Wrapf(models.NotFoundError, "no record for %s", key.Filename)
	}
	return record.Content, nil
}

// Save writes the whole record under its key, replacing any previous version.
func (store *BlobDatasetStore) Save(ctx context.Context, key models.DatasetKey, content string) error {
	data, err := json.Marshal(datasetRecord{
		Filename:   key.Filename,
		SheetName:  key.NullSheet(),
		Content:    content,
		UploadedAt: store.now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode record")
	}

	err = store.bucket.WriteAll(ctx, objectKey(key), data, &blob.WriterOptions{
		ContentType: "application/json",
	})
	return errors.Wrapf(err, "failed to write record for %s", key.Filename)
}

func (store *BlobDatasetStore) Delete(ctx context.Context, filename string) error {
	return store.scan(ctx, func(objectKey string, record datasetRecord) error {
		if record.Filename != filename {
			return nil
		}
		err := store.bucket.Delete(ctx, objectKey)
		if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
			return errors.Wrapf(err, "failed to delete record %s", objectKey)
		}
		return nil
	})
}

func (store *BlobDatasetStore) Liveness(ctx context.Context) error {
	ok, err := store.bucket.IsAccessible(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check bucket accessibility")
	}
	if !ok {
		return errors.New("bucket is not accessible")
	}
	return nil
}
