// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for offerctl's user
// configuration. The configuration is a YAML document located at
// $OFFERCTL_CFG_FILE or in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/offerctl.yaml or $HOME/.config/offerctl.yaml
//   - macOS: $HOME/Library/Application Support/offerctl.yaml
//   - Windows: %APPDATA%/offerctl.yaml
//
// Keys are addressed with dotted paths and looked up first under the active
// namespace (the subcommand name) and then at the top level, so
// "filter.price" wins over "price" while running `offerctl filter`.
package config
