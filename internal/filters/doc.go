// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows a set of flight offers down to those matching the
// user's criteria.
//
// Criteria has four optional fields, each driving one stage:
//
//   - airline : keep offers whose owner IATA code equals the value exactly
//   - duration: keep offers whose every slice lasts at most the ISO-8601 value
//   - stops   : keep offers whose every slice has at most stops+1 segments
//   - price   : keep offers with 0 < total_amount <= price
//
// A stage is active only when its field is set: a nil pointer, an empty
// airline or duration, or a zero price leave it out. Zero price is "no cap",
// not "free flights only".
//
// Stages compose by logical AND and are applied as a linear pipeline that
// preserves input order. Because every stage is a pure predicate the result
// does not depend on stage order; Apply accepts any permutation of Stages.
//
// An offer with no slices passes the duration and stops stages vacuously.
// This matches the historical behavior and is intentionally left as is.
//
// Criteria Spec:
//
// BuildCriteria parses the compact form used by the --criteria flag,
// e.g. "airline=LH,duration=PT20H,stops=0,price=1000". The delimiter
// defaults to a comma and can be overridden with OFFERCTL_FILTER_DELIM.
//
// Errors:
//
// A malformed duration (in the criteria or in an offer's slice) yields an
// *isoduration.MalformedDurationError. An offer missing the owner code while
// the airline stage is active yields an *offer.MalformedRecordError. Either
// aborts the whole call.
package filters
