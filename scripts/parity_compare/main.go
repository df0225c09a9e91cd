package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

// defaultTargets exercise the read side of every collection.
var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/api/grades?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/classes?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/subjects?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/lessons?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/exams?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/assignments?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/teachers?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/students?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/parents?limit=100", Critical: true},
	{Method: http.MethodGet, Path: "/api/announcements?limit=100"},
	{Method: http.MethodGet, Path: "/api/events?limit=100"},
	{Method: http.MethodGet, Path: "/api/statistics/counts"},
}

type side struct {
	base   string
	token  string
	status int
	body   []byte
	took   time.Duration
}

type comparison struct {
	target      target
	left, right side
	statusMatch bool
	bodyMatch   bool
	err         error
}

func main() {
	var (
		leftBase    string
		rightBase   string
		targetsPath string
		username    string
		password    string
		ignore      string
		timeout     time.Duration
	)

	flag.StringVar(&leftBase, "left", "http://localhost:8080", "Base URL of the reference deployment")
	flag.StringVar(&rightBase, "right", "http://localhost:8081", "Base URL of the deployment under test")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file; defaults to every list endpoint")
	flag.StringVar(&username, "username", "admin", "Admin username used on both sides")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password used on both sides")
	flag.StringVar(&ignore, "ignore", "_id,createdAt,updatedAt", "Comma separated fields excluded from body comparison")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	ctx := context.Background()

	left, right := side{base: leftBase}, side{base: rightBase}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { left.token, err = login(gctx, client, leftBase, username, password); return })
	g.Go(func() (err error) { right.token, err = login(gctx, client, rightBase, username, password); return })
	if err := g.Wait(); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	ignored := splitFields(ignore)
	var results []comparison
	breaking, optional := 0, 0
	for _, t := range targets {
		res := compare(ctx, client, left, right, t, ignored)
		if res.err != nil || !res.statusMatch || !res.bodyMatch {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func login(ctx context.Context, client *http.Client, base, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password, "role": "admin"})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: login returned %d", base, resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New(base + ": empty token")
	}
	return out.Token, nil
}

func compare(ctx context.Context, client *http.Client, left, right side, tgt target, ignored map[string]struct{}) comparison {
	res := comparison{target: tgt, left: left, right: right}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fetch(gctx, client, &res.left, tgt) })
	g.Go(func() error { return fetch(gctx, client, &res.right, tgt) })
	if err := g.Wait(); err != nil {
		res.err = err
		return res
	}
	res.statusMatch = res.left.status == res.right.status
	res.bodyMatch = bodiesEqual(res.left.body, res.right.body, ignored)
	return res
}

func fetch(ctx context.Context, client *http.Client, s *side, tgt target) error {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(s.base, "/")+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", s.base, err)
	}
	defer resp.Body.Close()
	s.took = time.Since(start)
	s.status = resp.StatusCode
	s.body, err = io.ReadAll(resp.Body)
	return err
}

func splitFields(raw string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out[f] = struct{}{}
		}
	}
	return out
}

// bodiesEqual compares two JSON payloads after dropping ignored fields at
// every depth. Identical bytes match even when they are not JSON.
func bodiesEqual(a, b []byte, ignored map[string]struct{}) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	aj, bj = normalize(aj, ignored), normalize(bj, ignored)
	left, err := json.Marshal(aj)
	if err != nil {
		return false
	}
	right, err := json.Marshal(bj)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

func normalize(v interface{}, ignored map[string]struct{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if _, skip := ignored[k]; skip {
				delete(val, k)
				continue
			}
			val[k] = normalize(inner, ignored)
		}
	case []interface{}:
		for i, inner := range val {
			val[i] = normalize(inner, ignored)
		}
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	}
	return v
}

func printReport(results []comparison) {
	fmt.Println("Parity Report")
	fmt.Println("=============")
	for _, res := range results {
		status := "OK"
		if res.err != nil {
			status = "ERROR"
		} else if !res.statusMatch || !res.bodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.target.Method, res.target.Path)
		fmt.Printf("  Left: %d (%s)  Right: %d (%s)\n", res.left.status, res.left.took, res.right.status, res.right.took)
		if res.err != nil {
			fmt.Printf("  Error: %v\n", res.err)
			continue
		}
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.statusMatch, res.bodyMatch, res.target.Critical)
	}
}
