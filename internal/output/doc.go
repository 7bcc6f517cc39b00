// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes, sorts and emits result rows as a text table, JSON,
// YAML or the raw source documents.
//
// Commands build a dataset (a JSON array of flat row objects) and hand it to
// SliceDiceSpit together with the column list from --attrs. Offer rows carry
// the computed columns listed in OfferColumns plus the original offer under
// "offer", which is where ".path" attrs are resolved.
package output
