// Command smoke sends the sample requests against a running server and
// prints each status and body.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type step struct {
	method string
	path   string
	body   any
}

func steps(full bool) []step {
	out := []step{
		{http.MethodPost, "/user/", map[string]any{"name": "user_1", "password": "12345"}},
		{http.MethodGet, "/user/1/", nil},
		{http.MethodPost, "/post/", map[string]any{"heading": "Post_1", "description": "text_text_text_1", "user_id": 1}},
		{http.MethodGet, "/post/1/", nil},
	}
	if full {
		out = append(out,
			step{http.MethodPatch, "/post/1/", map[string]any{"heading": "Post_22222", "description": "text_text_text_22222", "user_id": 1}},
			step{http.MethodDelete, "/post/1/", nil},
			step{http.MethodPatch, "/user/1/", map[string]any{"name": "new_name", "password": "1234567"}},
			step{http.MethodDelete, "/user/1/", nil},
		)
	}
	return out
}

func run(ctx context.Context, client *http.Client, base string, full bool, w io.Writer) error {
	base = strings.TrimRight(base, "/")
	for _, s := range steps(full) {
		var body io.Reader
		if s.body != nil {
			b, err := json.Marshal(s.body)
			if err != nil {
				return err
			}
			body = bytes.NewReader(b)
		}
		req, err := http.NewRequestWithContext(ctx, s.method, base+s.path, body)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", s.method, s.path, err)
		}
		out, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n%d\n%s\n", s.method, s.path, resp.StatusCode, bytes.TrimSpace(out))
	}
	return nil
}

func main() {
	base := flag.String("base", "http://127.0.0.1:8080", "server base URL")
	full := flag.Bool("full", false, "also patch and delete the created post and user")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	if err := run(ctx, client, *base, *full, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
