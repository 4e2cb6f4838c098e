/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3store keeps named objects in an Amazon S3 bucket, optionally
 * gzip compressed. It backs both the HTTP response cache used when fetching
 * cross tables and the archive of rendered tournament reports.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var ErrNotFound = errors.New("s3store: object not found")

// Store reads and writes objects under one prefix of an S3 bucket.
type Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client used when interacting with S3. By default this
	// is initialized in Init() with the default Config, but callers can
	// optionally override this with their own s3 client if desired.
	Client *s3.Client

	bucketName string

	// prefix is prepended to every object key
	prefix string

	// gzip indicates whether objects should be gzipped in Put and
	// gunzipped in Get. If true, object keys will have the suffix ".gz"
	// appended.
	gzip bool

	logErrors bool
}

// New returns a new Store with underlying storage in the specified Amazon S3
// bucket. Callers should take care to invoke Init() on the returned Store
// before use.
func New(bucketName string, prefix string, gzip bool, logErrors bool) *Store {
	return &Store{
		bucketName: bucketName,
		prefix:     prefix,
		gzip:       gzip,
		logErrors:  logErrors,
	}
}

// Init loads the default AWS configuration and verifies that the bucket is
// reachable. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func (s *Store) Init(ctx context.Context) error {
	var err error
	s.Config, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config)

	if _, err = s.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}

	if _, err = s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		Prefix:  aws.String(s.prefix),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

// Bucket returns the name of the backing bucket.
func (s *Store) Bucket() string {
	return s.bucketName
}

// Get returns the object stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.ObjectKey(key)),
	}

	resp, err := s.Client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, *input.Key)
		}
		s.logf("s3store.get: failed to get object %v/%v: %v", *input.Bucket,
			*input.Key, err)
		return nil, fmt.Errorf("s3store.get: %v: %w", *input.Key, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			s.logf("s3store.get: failed to open compressed object %v/%v: %v",
				*input.Bucket, *input.Key, err)
			return nil, fmt.Errorf("s3store.get: %v: %w", *input.Key, err)
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		s.logf("s3store.get: failed to read object %v/%v: %v", *input.Bucket,
			*input.Key, err)
		return nil, fmt.Errorf("s3store.get: %v: %w", *input.Key, err)
	}

	return data, nil
}

// Put stores data under key. An empty contentType leaves the S3 default.
func (s *Store) Put(ctx context.Context, key string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.ObjectKey(key)),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v: %w",
				*input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store.put: failed to close gzip writer for %v: %w",
				*input.Key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		s.logf("s3store.put: put failed for %v/%v: %v", *input.Bucket,
			*input.Key, err)
		return fmt.Errorf("s3store.put: %v: %w", *input.Key, err)
	}

	return nil
}

// Delete removes the object stored under key. Deleting a missing object is
// not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.ObjectKey(key)),
	}

	if _, err := s.Client.DeleteObject(ctx, input); err != nil {
		s.logf("s3store.delete: delete failed for %v/%v: %v", *input.Bucket,
			*input.Key, err)
		return fmt.Errorf("s3store.delete: %v: %w", *input.Key, err)
	}

	return nil
}

// ObjectKey returns the S3 key that key is stored under.
func (s *Store) ObjectKey(key string) string {
	objKey := path.Join("/", s.prefix, key)
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (s *Store) logf(format string, args ...any) {
	if s.logErrors {
		log.Printf(format, args...)
	}
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
