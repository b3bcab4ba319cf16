package github

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/httputil"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// query runs a GraphQL query and decodes its data object into out.
// Queries are read-only, so transient failures are retried.
func (c *Client) query(ctx context.Context, q string, vars map[string]any, out any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		var resp graphQLResponse
		if err := c.do(ctx, http.MethodPost, "/graphql", graphQLRequest{Query: q, Variables: vars}, &resp); err != nil {
			return err
		}
		if len(resp.Errors) > 0 {
			return graphQLFailure(resp.Errors)
		}

		data := bytes.TrimSpace(resp.Data)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			return errors.New(errors.ErrCodeDataFormat, "GraphQL response has no data")
		}
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(errors.ErrCodeDataFormat, err, "decode GraphQL data")
		}
		return nil
	})
}

func graphQLFailure(errs []graphQLError) error {
	msgs := make([]string, len(errs))
	code := errors.ErrCodeNetwork
	for i, e := range errs {
		msgs[i] = e.Message
		switch e.Type {
		case "RATE_LIMITED":
			code = errors.ErrCodeRateLimited
		case "FORBIDDEN", "INSUFFICIENT_SCOPES":
			code = errors.ErrCodeForbidden
		}
	}
	return errors.New(code, "GraphQL: %s", strings.Join(msgs, "; "))
}
