// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted offer document paths such as
// "slices[1].segments[#]" for the --attrs column layer.
package driller
