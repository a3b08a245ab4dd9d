package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pengeplan/internal/core"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads exactly one JSON object into v. Unknown fields are
// rejected.
func decodeJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return badRequest("content type must be application/json")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return badRequest("request body is empty")
		}
		return badRequest(fmt.Sprintf("invalid JSON: %v", err))
	}
	if dec.More() {
		return badRequest("request body must hold a single JSON object")
	}
	return nil
}

// Amount decodes either a JSON number or a kroner string such as "1 250,50".
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := core.ParseAmount(s)
		if err != nil {
			return err
		}
		*a = Amount(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// sanitizeInput trims whitespace and drops control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// queryAmount parses an amount parameter; absent means def.
func queryAmount(r *http.Request, key string, def float64) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	f, err := core.ParseAmount(v)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s: %q", key, v))
	}
	return f, nil
}

// queryFloat parses a plain decimal parameter such as a rate or an age.
func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s: %q", key, v))
	}
	return f, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s: %q", key, v))
	}
	return n, nil
}

// queryDate parses a YYYY-MM-DD parameter; absent means def.
func queryDate(r *http.Request, key string, def time.Time) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	d, ok := core.ParseDate(v)
	if !ok {
		return time.Time{}, badRequest(fmt.Sprintf("invalid %s: %q (want YYYY-MM-DD)", key, v))
	}
	return d.Time, nil
}

func queryStrategy(r *http.Request) (core.Strategy, error) {
	v := r.URL.Query().Get("strategy")
	s, ok := core.ParseStrategy(v)
	if !ok {
		return "", badRequest(fmt.Sprintf("unknown strategy %q: use snowball or avalanche", v))
	}
	return s, nil
}
