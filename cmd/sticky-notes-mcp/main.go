package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brbranch/sticky_notes_mcp/internal/bootstrap"
	"github.com/brbranch/sticky_notes_mcp/internal/config"
	"github.com/brbranch/sticky_notes_mcp/internal/jsonrpc"
	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/tools"
	"github.com/brbranch/sticky_notes_mcp/internal/transport/http"
	"github.com/brbranch/sticky_notes_mcp/internal/transport/stdio"
)

// ビルド時変数（-ldflags で変更可能）
var defaultTransport = "http"

// Options はCLI引数オプション
// Set系フラグは設定ファイル値とのマージ時にフラグ優先を判定するために保持
type Options struct {
	Transport  string
	Host       string
	Port       int
	ConfigPath string

	TransportSet bool
	HostSet      bool
	PortSet      bool
}

func main() {
	var err error

	// 引数なしの場合はserveをデフォルト実行
	if len(os.Args) < 2 {
		err = run([]string{})
	} else {
		switch os.Args[1] {
		case "serve":
			err = run(os.Args[1:])
		case "search":
			err = runSearchCmd(os.Args[2:])
		case "version", "-v", "--version":
			printVersion()
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printUsage prints the usage information
func printUsage() {
	fmt.Println(`sticky-notes-mcp - Sticky Notes MCP Server

Usage:
  sticky-notes-mcp <command> [options]

Commands:
  serve     Start the MCP server (http or stdio)
  search    Search notes (oneshot command)
  version   Print version information
  help      Print this help message

Serve Options:
  -t, --transport string   Transport type: http, stdio (default: http)
  --host string            HTTP host (default: 127.0.0.1)
  -p, --port int           HTTP port (default: 3456)
  -c, --config string      Config file path

Search Options:
  -f, --format string      Output format: text, json (default: text)
  -c, --config string      Config file path
  --stdin                  Read query from stdin

Examples:
  sticky-notes-mcp serve
  sticky-notes-mcp serve -t stdio
  sticky-notes-mcp serve -p 8080
  sticky-notes-mcp search "meeting notes"
  echo "groceries" | sticky-notes-mcp search --stdin`)
}

// printVersion prints the version information
func printVersion() {
	fmt.Printf("%s version %s\n", jsonrpc.ServerName, jsonrpc.ServerVersion)
}

// run は実際の処理を行う（テスト容易性のため分離）
func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()

	return runServe(ctx, opts)
}

// parseFlags は引数をパースしてOptionsを返す
func parseFlags(args []string) (*Options, error) {
	fs := flag.NewFlagSet("sticky-notes-mcp", flag.ContinueOnError)

	opts := &Options{}
	fs.StringVar(&opts.Transport, "transport", defaultTransport, "Transport type: http, stdio")
	fs.StringVar(&opts.Transport, "t", defaultTransport, "Transport type (shorthand)")
	fs.StringVar(&opts.Host, "host", config.DefaultHTTPHost, "HTTP host")
	fs.IntVar(&opts.Port, "port", config.DefaultHTTPPort, "HTTP port")
	fs.IntVar(&opts.Port, "p", config.DefaultHTTPPort, "HTTP port (shorthand)")
	fs.StringVar(&opts.ConfigPath, "config", "", "Config file path")
	fs.StringVar(&opts.ConfigPath, "c", "", "Config file path (shorthand)")

	// serveサブコマンド確認（引数なしまたは"serve"で始まる場合のみ許可）
	var flagArgs []string
	if len(args) == 0 {
		// 引数なし: デフォルトでserve
		flagArgs = []string{}
	} else if args[0] == "serve" {
		flagArgs = args[1:]
	} else {
		return nil, fmt.Errorf("usage: sticky-notes-mcp serve [options]")
	}

	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}

	// 明示指定されたフラグを記録（設定ファイル値よりフラグを優先するため）
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "transport", "t":
			opts.TransportSet = true
		case "host":
			opts.HostSet = true
		case "port", "p":
			opts.PortSet = true
		}
	})

	// バリデーション
	if opts.Transport != "http" && opts.Transport != "stdio" {
		return nil, fmt.Errorf("invalid transport: %s (must be http or stdio)", opts.Transport)
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d (must be 1-65535)", opts.Port)
	}

	return opts, nil
}

// setupSignalHandler はSIGINT/SIGTERMを受けてcontextをキャンセルする
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

// resolveServeSettings は設定ファイル・環境変数由来の値とフラグをマージする
// 明示的に指定されたフラグが設定値より優先
func resolveServeSettings(opts *Options, cfg *model.Config) (transport, host string, port int) {
	transport = cfg.TransportDefaults.DefaultTransport
	if opts.TransportSet || transport == "" {
		transport = opts.Transport
	}

	host = cfg.HTTP.Host
	if opts.HostSet || host == "" {
		host = opts.Host
	}

	port = cfg.HTTP.Port
	if opts.PortSet || port == 0 {
		port = opts.Port
	}

	return transport, host, port
}

// runServe はserveコマンドを実行
func runServe(ctx context.Context, opts *Options) error {
	services, cleanup, err := bootstrap.Initialize(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	defer cleanup()

	// JSON-RPC Handler初期化
	handler := jsonrpc.New(tools.New(services.NoteService))

	transport, host, port := resolveServeSettings(opts, services.Config)

	// transport起動
	switch transport {
	case "stdio":
		server := stdio.New(handler)
		return server.Run(ctx)
	case "http":
		httpConfig := http.Config{
			Addr:        fmt.Sprintf("%s:%d", host, port),
			CORSOrigins: services.Config.HTTP.CORSOrigins,
		}
		server := http.New(handler, services.NoteService, httpConfig)
		return server.Run(ctx)
	default:
		return fmt.Errorf("unknown transport: %s", transport)
	}
}
