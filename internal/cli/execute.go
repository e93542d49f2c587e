package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/volley-http/volley/client"
	"github.com/volley-http/volley/internal/output"
)

// addVerbFlags registers the flags shared by every verb command.
func addVerbFlags(cmd *cobra.Command, withBody bool) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	if withBody {
		cmd.Flags().StringP("data", "d", "", "Request body (parsed as JSON when possible)")
		cmd.Flags().String("content-type", "", "Content type alias (json, form, multipart) or full MIME type")
	}
}

// runVerb executes one verb command against the given URL.
func runVerb(cmd *cobra.Command, method, target string) {
	headers, _ := cmd.Flags().GetStringArray("header")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	format, _ := cmd.Flags().GetString("output")

	var data interface{}
	if cmd.Flags().Lookup("data") != nil {
		raw, _ := cmd.Flags().GetString("data")
		data = parseDataFlag(raw)
	}

	baseURL, path := parseURL(target)

	c := client.NewClient().
		SetPrefix(baseURL).
		SetTimeout(timeout).
		Configure("responseType", "raw").
		Headers(parseHeaderFlags(headers))

	if cmd.Flags().Lookup("content-type") != nil {
		if alias, _ := cmd.Flags().GetString("content-type"); alias != "" {
			c.ContentType(alias)
		}
	}

	formatter := output.GetFormatter(output.Format(format), verbose, noColor)

	if err := executeCall(context.Background(), c, method, path, data, formatter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// executeCall dispatches one call through the client pipeline, printing the
// resolved request before dispatch and the response after.
func executeCall(ctx context.Context, c *client.Client, method, path string, data interface{}, formatter output.Provider) error {
	c.OnBeforeRequest(func(url string, req *client.ResolvedRequest) bool {
		fmt.Print(formatter.FormatRequest(req))
		return true
	})

	start := time.Now()
	parsed, err := c.Send(ctx, path, &client.CallOptions{Method: method, Data: data})
	elapsed := time.Since(start)

	if err != nil {
		// Status failures still carry a printable response.
		var rerr *client.RequestError
		if errors.As(err, &rerr) && rerr.Response != nil {
			fmt.Print(formatter.FormatResponse(rerr.Response, elapsed))
			return nil
		}
		return err
	}

	// A 204 yields no parsed value at all.
	if parsed == nil {
		fmt.Printf("No content (%dms)\n", elapsed.Milliseconds())
		return nil
	}
	resp, ok := parsed.(*client.Response)
	if !ok {
		return fmt.Errorf("unexpected response value %T", parsed)
	}
	fmt.Print(formatter.FormatResponse(resp, elapsed))
	return nil
}

// parseDataFlag interprets the -d flag as JSON when possible, falling back to
// a raw string.
func parseDataFlag(raw string) interface{} {
	if raw == "" {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed
	}
	return raw
}
