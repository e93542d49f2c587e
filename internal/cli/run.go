package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/volley-http/volley/client"
	"github.com/volley-http/volley/config"
	"github.com/volley-http/volley/internal/output"
	"github.com/volley-http/volley/pkg/jsonpath"
	"github.com/volley-http/volley/pkg/jsonschema"
)

var runCmd = &cobra.Command{
	Use:   "run [config-file]",
	Short: "Run requests from a collection file",
	Long: `Run a named request or suite from a YAML or JSON collection file.
Variables extracted from responses feed into subsequent requests, so suites
can chain calls (login, then use the token).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		envName, _ := cmd.Flags().GetString("env")
		reqName, _ := cmd.Flags().GetString("request")
		suiteName, _ := cmd.Flags().GetString("suite")
		verbose, _ := cmd.Flags().GetBool("verbose")
		noColor, _ := cmd.Flags().GetBool("no-color")
		format, _ := cmd.Flags().GetString("output")

		if err := runCollection(args[0], envName, reqName, suiteName, verbose, noColor, format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringP("env", "e", "", "Environment to use (required)")
	runCmd.Flags().StringP("request", "r", "", "Request to run")
	runCmd.Flags().StringP("suite", "s", "", "Suite to run")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	runCmd.MarkFlagRequired("env")
}

// runner executes collection requests against one environment, carrying
// extracted variables between requests.
type runner struct {
	cfg       *config.Config
	vars      map[string]string
	formatter output.Provider
	client    *client.Client
}

func runCollection(path, envName, reqName, suiteName string, verbose, noColor bool, format string) error {
	if reqName == "" && suiteName == "" {
		return fmt.Errorf("either --request or --suite is required")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if verrs := config.ValidateConfig(cfg); len(verrs) > 0 {
		messages := make([]string, len(verrs))
		for i, verr := range verrs {
			messages[i] = verr.Error()
		}
		return fmt.Errorf("invalid collection:\n  %s", strings.Join(messages, "\n  "))
	}

	if err := config.ValidateEnvironment(cfg, envName); err != nil {
		return err
	}
	env := cfg.Environments[envName]

	formatter := output.GetFormatter(output.Format(format), verbose, noColor)

	c := client.NewClient().
		SetPrefix(env.BaseURL).
		Configure("responseType", "raw").
		Headers(env.Headers).
		OnBeforeRequest(func(url string, req *client.ResolvedRequest) bool {
			fmt.Print(formatter.FormatRequest(req))
			return true
		})

	r := &runner{
		cfg:       cfg,
		vars:      config.MergeEnvironments(nil, env.Vars),
		formatter: formatter,
		client:    c,
	}

	if suiteName != "" {
		if err := config.ValidateSuite(cfg, suiteName); err != nil {
			return err
		}
		suite := cfg.Suites[suiteName]
		r.vars = config.MergeEnvironments(r.vars, suite.Vars)
		for _, name := range suite.Requests {
			if err := r.execute(context.Background(), name); err != nil {
				return fmt.Errorf("request %s: %w", name, err)
			}
		}
		return nil
	}

	if err := config.ValidateRequest(cfg, reqName); err != nil {
		return err
	}
	return r.execute(context.Background(), reqName)
}

// execute runs one named request: substitute variables, dispatch, print,
// then apply extraction and schema validation to the response body.
func (r *runner) execute(ctx context.Context, name string) error {
	req := r.cfg.Requests[name]

	target := config.ProcessEnvironment(req.URL, r.vars)
	if params := config.ProcessEnvironmentInMap(req.QueryParams, r.vars); len(params) > 0 {
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target = target + sep + values.Encode()
	}

	opts := &client.CallOptions{
		Method:  strings.ToUpper(req.Method),
		Headers: config.ProcessEnvironmentInMap(req.Headers, r.vars),
		Data:    substituteBody(req.Body, r.vars),
	}
	if opts.Method == "" {
		opts.Method = "GET"
	}
	if req.Timeout != "" {
		timeout, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", req.Timeout, err)
		}
		opts.Timeout = timeout
	}

	start := time.Now()
	parsed, err := r.client.Send(ctx, target, opts)
	elapsed := time.Since(start)

	if err != nil {
		var rerr *client.RequestError
		if errors.As(err, &rerr) && rerr.Response != nil {
			fmt.Print(r.formatter.FormatResponse(rerr.Response, elapsed))
		}
		return err
	}
	// A 204 yields no parsed value; nothing to extract or validate.
	if parsed == nil {
		fmt.Printf("No content (%dms)\n", elapsed.Milliseconds())
		return nil
	}
	resp, ok := parsed.(*client.Response)
	if !ok {
		return fmt.Errorf("unexpected response value %T", parsed)
	}
	fmt.Print(r.formatter.FormatResponse(resp, elapsed))

	body, err := resp.Text()
	if err != nil {
		return err
	}

	if len(req.Extract) > 0 {
		extracted, err := jsonpath.ExtractMultiple(body, req.Extract)
		for key, value := range extracted {
			r.vars[key] = value
		}
		if err != nil {
			return err
		}
		for _, key := range sortedVarKeys(extracted) {
			fmt.Printf("  Extracted: %s = %s\n", key, extracted[key])
		}
	}

	if req.Schema != "" {
		schemaJSON, err := r.cfg.SchemaJSON(req.Schema)
		if err != nil {
			return err
		}
		ok, verrs := jsonschema.ValidateWithErrors(body, schemaJSON)
		if !ok {
			return fmt.Errorf("schema %s: %w", req.Schema, verrs)
		}
		fmt.Printf("  Schema: %s OK\n", req.Schema)
	}

	return nil
}

// substituteBody applies variable substitution to every string inside a
// decoded body value.
func substituteBody(body interface{}, vars map[string]string) interface{} {
	switch value := body.(type) {
	case string:
		return config.ProcessEnvironment(value, vars)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(value))
		for key, item := range value {
			m[key] = substituteBody(item, vars)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(value))
		for key, item := range value {
			m[fmt.Sprint(key)] = substituteBody(item, vars)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(value))
		for i, item := range value {
			s[i] = substituteBody(item, vars)
		}
		return s
	default:
		return value
	}
}

func sortedVarKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
