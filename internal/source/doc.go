// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source loads flight offers from a document on disk, on stdin or in
// S3 and validates them at the boundary.
//
// Locations:
//
//   - "-"                read the document from stdin
//   - "s3://bucket/key"  read the object from S3, cached locally by ETag
//   - anything else      read a local file
//
// The document is parsed with gjson. When no path is given the offers array
// is the document itself if it is an array, else the first of "data.offers",
// "data" and "offers" that holds an array. This covers both a bare list and
// the usual envelope shapes of offer search responses.
//
// Validation:
//
// Each offer needs owner.iata_code, owner.name, a slices array and a
// total_amount that is a number or a numeric string. Each slice needs a
// duration string and a segments array. The first violation is returned as an
// *offer.MalformedRecordError naming the offer's index and the field.
package source
