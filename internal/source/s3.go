// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/tfctl/offerctl/internal/aws"
	"github.com/tfctl/offerctl/internal/cacheutil"
	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/log"
)

// S3API is the subset of the S3 client used to fetch documents.
type S3API interface {
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// readS3 fetches s3://bucket/key. The body is cached under the object's ETag
// so an unchanged object is read from disk.
func readS3(ctx context.Context, uri string, opts Options) ([]byte, error) {
	bucket, key, err := awsx.ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	purgeCache()

	svc := opts.S3
	if svc == nil {
		if svc, err = newS3(ctx, opts); err != nil {
			return nil, err
		}
	}

	head, err := svc.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head S3 object: %w", err)
	}

	etag := awsv2.ToString(head.ETag)
	ns := []string{"s3", bucket}
	cacheKey := uri + "@" + etag
	if etag != "" {
		if entry, ok := cacheutil.Read(ns, cacheKey); ok {
			return entry.Data, nil
		}
	}

	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket:  awsv2.String(bucket),
		Key:     awsv2.String(key),
		IfMatch: head.ETag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	log.Debugf("s3 object read: bucket=%s key=%s etag=%s bytes=%d", bucket, key, etag, len(body))

	if etag != "" {
		if err := cacheutil.Write(ns, cacheKey, body); err != nil {
			log.WithError(err).Warnf("failed to cache %s", uri)
		}
	}
	return body, nil
}

// newS3 builds a client from opts, falling back to the s3.profile and
// s3.region config keys.
func newS3(ctx context.Context, opts Options) (S3API, error) {
	profile := opts.Profile
	if profile == "" {
		profile, _ = config.GetString("s3.profile", "")
	}
	region := opts.Region
	if region == "" {
		region, _ = config.GetString("s3.region", "")
	}

	cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithProfile(profile), awsx.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return awsx.NewS3(cfg, awsx.WithS3Endpoint(opts.Endpoint)), nil
}

func purgeCache() {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warnf("failed to purge cache")
	}
}
