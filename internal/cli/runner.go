package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"marketdata/internal/adapters/errors/noop"
	"marketdata/internal/adapters/exchanges"
	"marketdata/pkg/errors"
	"marketdata/pkg/logger"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Client is the market data surface the runner drives.
type Client interface {
	exchanges.MarketData
	BaseURL() string
	AlternateURLs() []string
}

// HostSelector returns a client bound to another host.
type HostSelector func(host string) (Client, error)

// Runner parses command lines and performs one market data request per run.
type Runner struct {
	client     Client
	selectHost HostSelector
	tracker    errors.Tracker
	log        *logger.Logger

	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a runner. selectHost may be nil, in which case -host is rejected.
func NewRunner(client Client, selectHost HostSelector, tracker errors.Tracker, log *logger.Logger, stdout, stderr io.Writer) *Runner {
	if tracker == nil {
		tracker = noop.New()
	}
	if log == nil {
		log = logger.Get()
	}
	return &Runner{
		client:     client,
		selectHost: selectHost,
		tracker:    tracker,
		log:        log,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// Run executes args (without the program name) and returns the exit code.
func (r *Runner) Run(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("marketdata", flag.ContinueOnError)
	global.SetOutput(r.stderr)
	pretty := global.Bool("pretty", false, "indent JSON response bodies")
	global.Usage = func() { r.usage(global) }

	if err := global.Parse(args); err != nil {
		return ExitUsage
	}
	if global.NArg() == 0 {
		r.usage(global)
		return ExitUsage
	}

	name, rest := global.Arg(0), global.Args()[1:]

	if name == "hosts" {
		r.printHosts()
		return ExitOK
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(r.stderr, "unknown command %q\n", name)
		r.usage(global)
		return ExitUsage
	}

	f, err := r.parseRequestFlags(name, rest)
	if err != nil {
		return ExitUsage
	}

	client := r.client
	if f.set["host"] {
		if r.selectHost == nil {
			fmt.Fprintln(r.stderr, "-host is not supported")
			return ExitUsage
		}
		client, err = r.selectHost(f.host)
		if err != nil {
			fmt.Fprintf(r.stderr, "invalid -host: %v\n", err)
			return ExitUsage
		}
	}

	return r.execute(ctx, name, cmd, client, f, *pretty)
}

func (r *Runner) parseRequestFlags(name string, args []string) (requestFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.stderr)

	f := requestFlags{set: make(map[string]bool)}
	fs.StringVar(&f.symbol, "symbol", "", "trading pair, e.g. ETHUSDT")
	fs.IntVar(&f.limit, "limit", 0, "number of entries to return")
	fs.Int64Var(&f.fromID, "from-id", 0, "first trade id to return")
	fs.StringVar(&f.start, "start", "", "start time (unix ms or RFC 3339)")
	fs.StringVar(&f.end, "end", "", "end time (unix ms or RFC 3339)")
	fs.StringVar(&f.interval, "interval", "", "kline interval, one of "+intervalList())
	fs.StringVar(&f.host, "host", "", "send the request to this host instead of the configured one")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(r.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return f, errors.Wrap(errors.ErrInvalidInput, "unexpected arguments")
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

func (r *Runner) execute(ctx context.Context, name string, cmd command, client Client, f requestFlags, pretty bool) int {
	tags := map[string]string{
		"command": name,
		"host":    client.BaseURL(),
	}
	log := r.log.WithFields(map[string]interface{}{
		"command": name,
		"host":    client.BaseURL(),
	})

	r.tracker.AddBreadcrumb(ctx, name, "market_data", errors.LevelInfo, map[string]interface{}{
		"host":   client.BaseURL(),
		"symbol": f.symbol,
	})

	start := time.Now()
	resp, err := cmd.run(ctx, client, f)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			fmt.Fprintln(r.stderr, err)
			return ExitUsage
		}
		r.report(ctx, log, fmt.Errorf("%s request: %w: %w", name, errors.ErrExchangeUnavailable, err), tags)
		fmt.Fprintf(r.stderr, "request failed: %v\n", err)
		return ExitFailure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.report(ctx, log, errors.Wrapf(err, "%s read body", name), tags)
		fmt.Fprintf(r.stderr, "read response: %v\n", err)
		return ExitFailure
	}

	fmt.Fprintf(r.stderr, "%s %s (%s in %s)\n",
		resp.Proto, resp.Status, humanize.Bytes(uint64(len(body))), time.Since(start).Round(time.Millisecond))

	r.writeBody(body, pretty)

	if !StatusOK(resp) {
		statusErr := errors.Wrapf(errors.ErrUnexpectedStatus, "%s returned %s", name, resp.Status)
		log.Warnw("market data command got non-2xx status", "status", resp.StatusCode, "error", statusErr)
		if trackErr := r.tracker.CaptureMessage(ctx, statusErr.Error(), errors.LevelWarning, tags); trackErr != nil {
			log.Warnw("error tracker rejected event", "error", trackErr)
		}
		return ExitFailure
	}
	return ExitOK
}

func (r *Runner) report(ctx context.Context, log *logger.Logger, err error, tags map[string]string) {
	log.Errorw("market data command failed", "error", err)
	if trackErr := r.tracker.CaptureError(ctx, err, tags); trackErr != nil {
		log.Warnw("error tracker rejected event", "error", trackErr)
	}
}

func intervalList() string {
	names := make([]string, len(exchanges.Intervals))
	for i, iv := range exchanges.Intervals {
		names[i] = string(iv)
	}
	return strings.Join(names, " ")
}

func (r *Runner) writeBody(body []byte, pretty bool) {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			_, _ = buf.WriteTo(r.stdout)
			return
		}
	}

	_, _ = r.stdout.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, _ = io.WriteString(r.stdout, "\n")
	}
}

func (r *Runner) printHosts() {
	fmt.Fprintf(r.stdout, "primary    %s\n", r.client.BaseURL())
	for _, alt := range r.client.AlternateURLs() {
		fmt.Fprintf(r.stdout, "alternate  %s\n", alt)
	}
}

func (r *Runner) usage(global *flag.FlagSet) {
	fmt.Fprintln(r.stderr, "usage: marketdata [-pretty] <command> [flags]")
	fmt.Fprintln(r.stderr)
	fmt.Fprintln(r.stderr, "commands:")
	for _, name := range commandNames() {
		if name == "hosts" {
			fmt.Fprintf(r.stderr, "  %-18s %s\n", name, "list the primary and alternate hosts")
			continue
		}
		fmt.Fprintf(r.stderr, "  %-18s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(r.stderr)
	fmt.Fprintln(r.stderr, "global flags:")
	global.PrintDefaults()
}

// SendsRequest reports whether args name a command that calls the exchange.
// Only -pretty precedes the command, and it takes no separate value.
func SendsRequest(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		_, ok := commands[arg]
		return ok
	}
	return false
}

// StatusOK reports whether resp carries a 2xx status.
func StatusOK(resp *http.Response) bool {
	return resp != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299
}
