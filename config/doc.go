// Package config provides loading and validation for volley collection
// files in YAML or JSON.
//
// A collection file defines:
//   - Environments: base URLs, headers, and variables for target environments
//   - Requests: HTTP request templates with URL, method, headers, and body
//   - Suites: ordered lists of requests with shared variables
//   - Schemas: JSON schemas for response validation
//
// Basic Usage:
//
//	cfg, err := config.Load("volley.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := cfg.Environments["staging"]
//	fmt.Printf("Base URL: %s\n", env.BaseURL)
//
//	req := cfg.Requests["getUsers"]
//	fmt.Printf("Method: %s, URL: %s\n", req.Method, req.URL)
//
// Variables use the {{name}} syntax and are substituted from the environment
// and suite variable sets, with suite variables taking precedence.
package config
