package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/wiretype-mcp/internal/config"
	"github.com/usestring/wiretype-mcp/internal/routes"
	"github.com/usestring/wiretype-mcp/pkg/sample"
	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

var genQuiet bool

var genCmd = &cobra.Command{
	Use:   "gen <observations.ndjson>",
	Short: "Generate declarations from an observation file",
	Long: `Gen reads newline-delimited JSON observations and prints the
synthesized interface declarations, one block per route.

Each line is an object with url, method, status, and an optional body:

  {"url": "https://api.example.com/users/42", "method": "GET", "status": 200, "body": {"id": 42}}

Engine knobs come from the TYPEGEN_* environment variables.`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false,
		"Suppress the per-route statistics footer")
	rootCmd.AddCommand(genCmd)
}

var printer = message.NewPrinter(language.English)

// genRecord is one line of the observation file.
type genRecord struct {
	URL    string          `json:"url"`
	Method string          `json:"method"`
	Status int             `json:"status"`
	TsMs   int64           `json:"ts_ms,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
}

type genRoute struct {
	route        routes.Route
	observations []typegen.Observation
}

func runGen(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening observation file: %w", err)
	}
	defer f.Close()

	cfg := config.Load()
	engine := typegen.NewEngine(cfg.EngineOptions())

	byRoute := make(map[string]*genRoute)
	var order []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec genRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		parsed, err := url.Parse(rec.URL)
		if err != nil {
			return fmt.Errorf("line %d: unparseable URL %q: %w", lineNo, rec.URL, err)
		}

		host := strings.ToLower(parsed.Host)
		method := strings.ToUpper(rec.Method)
		template := routes.TemplatePath(parsed.Path)
		routeID := routes.RouteID(host, method, template)

		gr, ok := byRoute[routeID]
		if !ok {
			gr = &genRoute{route: routes.Route{
				ID:       routeID,
				Host:     host,
				Method:   method,
				Template: template,
				BaseName: routes.BaseName(method, template),
			}}
			byRoute[routeID] = gr
			order = append(order, routeID)
		}

		obs := typegen.Observation{StatusCode: rec.Status}
		if rec.TsMs > 0 {
			obs.ReceivedAt = time.UnixMilli(rec.TsMs).UTC()
		}
		if len(rec.Body) > 0 {
			v, err := sample.Decode(rec.Body)
			if err != nil {
				return fmt.Errorf("line %d: decoding body: %w", lineNo, err)
			}
			obs.Value = v
		}
		gr.observations = append(gr.observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading observation file: %w", err)
	}

	sort.Strings(order)

	generated := 0
	total := 0
	out := cmd.OutOrStdout()
	for _, routeID := range order {
		gr := byRoute[routeID]
		total += len(gr.observations)

		decl, changed, err := engine.Synthesize(gr.route.ID, gr.route.BaseName, gr.observations, "")
		if err != nil {
			return fmt.Errorf("route %s %s: %w", gr.route.Method, gr.route.Template, err)
		}
		if !changed || decl == nil {
			continue
		}

		if generated > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "// %s %s (%s, signature %s)\n", gr.route.Method, gr.route.Template, gr.route.ID, decl.Signature)
		fmt.Fprintln(out, decl.Text)
		generated++
	}

	if !genQuiet {
		printer.Fprintf(cmd.ErrOrStderr(), "%d observations across %d routes, %d declaration blocks generated\n",
			total, len(byRoute), generated)
	}
	return nil
}
