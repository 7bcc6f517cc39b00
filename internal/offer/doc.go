// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package offer declares the flight offer record consumed by the airline
// index and the filters. Offers follow the shape of an offer-search API
// response: an owning airline, one slice per journey direction, each slice
// made of one or more segments, and a total amount.
//
// Records are validated where they are decoded (see the source package), so
// consumers may assume the required fields are present. The few checks that
// remain in the core report a MalformedRecordError.
package offer
