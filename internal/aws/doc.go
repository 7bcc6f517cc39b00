// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws wraps AWS SDK v2 config loading and S3 client construction for
// reading offer documents from s3:// URIs.
package aws
