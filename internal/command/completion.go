// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/meta"
)

const bashCompletionScript = `# bash completion for offerctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_offerctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "airlines filter completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --endpoint --output -o --padding --path --profile --region --schema --sort -s --titles -t"

    case "$cmd" in
        airlines)
            local opts="$common"
            ;;
        filter)
            local opts="$common --airline -A --duration -d --stops -n --price -p --criteria -f --count"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --duration|-d)
            COMPREPLY=( $(compgen -W "PT6H PT12H PT20H P1D" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise we're on the source positional, complete files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _offerctl offerctl
`

const zshCompletionScript = `#compdef offerctl

_offerctl() {
  local -a cmds
  cmds=(
    'airlines:list the airlines selling the offers'
    'filter:filter offers by airline, duration, stops and price'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-a --attrs)'{-a,--attrs}'[columns to include]:attrs'
    '(-c --color)'{-c,--color}'[enable colored text]'
    '--endpoint[S3-compatible endpoint]:url'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '--padding[spaces between columns]:n'
    '--path[gjson path to the offers array]:path'
    '--profile[AWS profile]:profile'
    '--region[AWS region]:region'
    '--schema[list columns and offer paths]'
    '(-s --sort)'{-s,--sort}'[sort columns]:attrs'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'offerctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    airlines)
      _arguments -C \
        $common \
        '::source:_files'
      ;;
    filter)
      _arguments -C \
        $common \
        '(-A --airline)'{-A,--airline}'[IATA airline code]:code' \
        '(-d --duration)'{-d,--duration}'[maximum ISO-8601 slice duration]:duration:(PT6H PT12H PT20H P1D)' \
        '(-n --stops)'{-n,--stops}'[maximum stops per slice]:stops' \
        '(-p --price)'{-p,--price}'[maximum total amount]:price' \
        '(-f --criteria)'{-f,--criteria}'[compact criteria]:criteria' \
        '--count[print only the number of matches]' \
        '::source:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:source:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _offerctl offerctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := GetMeta(cmd).Out()

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Fall back to the login shell.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: offerctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "offerctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
