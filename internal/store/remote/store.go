// Package remote stores diary entries as JSON objects in an S3 compatible
// bucket, one object per entry under <prefix>diaries/<id>.json.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/idx"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// createAttempts bounds id regeneration when a fresh key is already taken.
const createAttempts = 3

// ObjectAPI is the subset of *s3.Client used by Store.
type ObjectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store implements store.Store, store.Pinger.
type Store struct {
	api    ObjectAPI
	bucket string
	dir    string

	now   func() time.Time
	newID func() string
}

// New returns a store writing to bucket under prefix.
func New(api ObjectAPI, bucket, prefix string) *Store {
	return &Store{
		api:    api,
		bucket: bucket,
		dir:    prefix + common.LocalStorageKey + "/",
		now:    time.Now,
		newID:  idx.NewObjectID,
	}
}

func (s *Store) key(id string) string {
	return s.dir + id + ".json"
}

// List reads every entry object. The result is ordered newest created first.
func (s *Store) List(ctx context.Context) ([]models.Entry, error) {
	out := []models.Entry{}

	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.dir),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list objects: %w", common.ErrRetrieval, err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			if !strings.HasSuffix(k, ".json") {
				continue
			}
			e, err := s.read(ctx, k)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrRetrieval, err)
			}
			if e.ID == "" {
				e.ID = strings.TrimSuffix(path.Base(k), ".json")
			}
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Save creates the entry unless its id has the shape of an existing
// record, in which case that record is patched.
func (s *Store) Save(ctx context.Context, e models.Entry) (models.Entry, error) {
	now := s.now().UTC()

	if idx.Classify(e.ID) == idx.RemoteRecord {
		cur, err := s.read(ctx, s.key(e.ID))
		if err != nil {
			return models.Entry{}, fmt.Errorf("%w: %w", common.ErrSave, err)
		}
		cur.Patch(e)
		cur.ID = e.ID
		cur.UpdatedAt = now
		if cur.CreatedAt.IsZero() {
			cur.CreatedAt = now
		}
		cur.Normalize()
		if err := s.write(ctx, cur, false); err != nil {
			return models.Entry{}, fmt.Errorf("%w: %w", common.ErrSave, err)
		}
		return cur, nil
	}

	var rec models.Entry
	rec.Patch(e)
	rec.CreatedAt, rec.UpdatedAt = now, now

	for range createAttempts {
		rec.ID = s.newID()
		err := s.write(ctx, rec, true)
		if err == nil {
			return rec, nil
		}
		if !isKeyTaken(err) {
			return models.Entry{}, fmt.Errorf("%w: %w", common.ErrSave, err)
		}
	}
	return models.Entry{}, fmt.Errorf("%w: no free id after %d attempts", common.ErrSave, createAttempts)
}

// Delete removes the entry object. A missing object is reported as an
// error wrapping common.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", common.ErrDelete, common.ErrNotFound)
	}
	k := s.key(id)

	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(k)})
	if isNotFound(err) {
		return fmt.Errorf("%w: %s: %w", common.ErrDelete, id, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: head object: %w", common.ErrDelete, err)
	}

	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(k)}); err != nil {
		return fmt.Errorf("%w: delete object: %w", common.ErrDelete, err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func (s *Store) read(ctx context.Context, key string) (models.Entry, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if isNotFound(err) {
		return models.Entry{}, fmt.Errorf("%s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	var e models.Entry
	if err := json.NewDecoder(out.Body).Decode(&e); err != nil {
		return models.Entry{}, fmt.Errorf("decode %s: %w", key, err)
	}
	e.Normalize()
	return e, nil
}

func (s *Store) write(ctx context.Context, e models.Entry, create bool) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(e.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	if create {
		in.IfNoneMatch = aws.String("*")
	}
	_, err = s.api.PutObject(ctx, in)
	return err
}
