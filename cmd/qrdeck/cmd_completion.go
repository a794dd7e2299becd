package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrdeck completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  qrdeck completion bash > /usr/local/etc/bash_completion.d/qrdeck\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  qrdeck completion zsh > \"${fpath[1]}/_qrdeck\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  qrdeck completion fish > ~/.config/fish/completions/qrdeck.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	script, ok := completionScript(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", fs.Arg(0))
		os.Exit(1)
	}
	fmt.Print(script)
}

func completionScript(shell string) (string, bool) {
	switch shell {
	case "bash":
		return generateBashCompletion(), true
	case "zsh":
		return generateZshCompletion(), true
	case "fish":
		return generateFishCompletion(), true
	}
	return "", false
}

func generateBashCompletion() string {
	return `# bash completion for qrdeck                             -*- shell-script -*-

_qrdeck() {
    local cur prev words cword
    _init_completion || return

    local commands="generate scan history completion version help"
    local history_commands="list export recall delete clear"

    local generate_flags="--out --size --level --no-save"
    local scan_flags="--no-save"
    local history_flags="--search --color --out --yes"
    local tui_flags="--theme --version"

    local levels="low medium high highest"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        if [[ "${cur}" == -* ]]; then
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        fi
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --level)
            COMPREPLY=($(compgen -W "${levels}" -- "${cur}"))
            return
            ;;
        --out)
            _filedir
            return
            ;;
        --size|--search|--theme)
            return
            ;;
    esac

    case "${command}" in
        generate)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${generate_flags}" -- "${cur}"))
            fi
            ;;
        scan)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${scan_flags}" -- "${cur}"))
            else
                _filedir '@(png|jpg|jpeg)'
            fi
            ;;
        history)
            if [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "${history_commands}" -- "${cur}"))
            elif [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            fi
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _qrdeck qrdeck
`
}

func generateZshCompletion() string {
	return `#compdef qrdeck

# zsh completion for qrdeck

_qrdeck() {
    local -a commands
    commands=(
        'generate:Print a QR code for some text, or save it as PNG'
        'scan:Decode a QR code from an image file'
        'history:List, export, recall, delete or clear history entries'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--theme[Theme to start with]:theme:' \
        '--version[Print version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'qrdeck commands' commands
            ;;
        args)
            case $words[1] in
                generate)
                    _arguments \
                        '--out[Write a PNG to this path]:file:_files' \
                        '--size[PNG edge length in pixels]:size:' \
                        '--level[Recovery level]:level:(low medium high highest)' \
                        '--no-save[Do not add the text to history]' \
                        '*:text:'
                    ;;
                scan)
                    _arguments \
                        '--no-save[Do not add decoded text to history]' \
                        '*:image:_files -g "*.(png|jpg|jpeg)"'
                    ;;
                history)
                    _arguments \
                        '1:subcommand:(list export recall delete clear)' \
                        '--search[Only show matching entries]:query:' \
                        '--color[Syntax highlight JSON output]' \
                        '--out[Write to a file]:file:_files' \
                        '--yes[Do not ask for confirmation]' \
                        '*:id:'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_qrdeck "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for qrdeck

set -l commands generate scan history completion version help

complete -c qrdeck -f
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a generate -d "Print a QR code for some text"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a scan -d "Decode a QR code from an image file"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a history -d "Manage history entries"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a completion -d "Generate shell completion scripts"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a version -d "Print version information"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -a help -d "Show help message"
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -l theme -d "Theme to start with" -r
complete -c qrdeck -n "not __fish_seen_subcommand_from $commands" -l version -d "Print version and exit"

# generate
complete -c qrdeck -n "__fish_seen_subcommand_from generate" -l out -d "Write a PNG to this path" -r -F
complete -c qrdeck -n "__fish_seen_subcommand_from generate" -l size -d "PNG edge length in pixels" -r
complete -c qrdeck -n "__fish_seen_subcommand_from generate" -l level -d "Recovery level" -r -a "low medium high highest"
complete -c qrdeck -n "__fish_seen_subcommand_from generate" -l no-save -d "Do not add the text to history"

# scan
complete -c qrdeck -n "__fish_seen_subcommand_from scan" -F
complete -c qrdeck -n "__fish_seen_subcommand_from scan" -l no-save -d "Do not add decoded text to history"

# history
complete -c qrdeck -n "__fish_seen_subcommand_from history; and not __fish_seen_subcommand_from list export recall delete clear" -a "list export recall delete clear"
complete -c qrdeck -n "__fish_seen_subcommand_from history" -l search -d "Only show matching entries" -r
complete -c qrdeck -n "__fish_seen_subcommand_from history" -l color -d "Syntax highlight JSON output"
complete -c qrdeck -n "__fish_seen_subcommand_from history" -l out -d "Write to a file" -r -F
complete -c qrdeck -n "__fish_seen_subcommand_from history" -l yes -d "Do not ask for confirmation"

# completion
complete -c qrdeck -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
}
