// Package update implements the background version check: a one-shot,
// cached lookup of the latest released version.
package update

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// requestTimeout bounds the version endpoint request; the check is
// best-effort and must never hold up the interactive session.
const requestTimeout = 3 * time.Second

// maxResponseSize guards against a misbehaving endpoint.
const maxResponseSize = 128

// Checker performs the one-shot latest-version lookup.
type Checker struct {
	url       string
	cacheFile string
	interval  time.Duration
	current   string
	client    *http.Client
}

// NewChecker builds a checker for the given endpoint, cache file, and
// currently running version.
func NewChecker(url, cacheFile string, intervalHours int, current string) *Checker {
	return &Checker{
		url:       url,
		cacheFile: cacheFile,
		interval:  time.Duration(intervalHours) * time.Hour,
		current:   current,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// Begin runs the check in the background. The returned channel receives
// the newer version if one exists, then closes; it closes without a value
// when the running version is current or the check fails.
func (c *Checker) Begin(ctx context.Context) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		if v, ok := c.Check(ctx); ok {
			ch <- v
		}
	}()
	return ch
}

// Check returns the latest version and true when it is newer than the
// running version. Failures are swallowed; the check is informational.
func (c *Checker) Check(ctx context.Context) (string, bool) {
	latest, ok := c.cachedVersion()
	if !ok {
		latest = c.fetchVersion(ctx)
		if latest == "" {
			return "", false
		}
		c.writeCache(latest)
	}

	if newerThan(latest, c.current) {
		return latest, true
	}
	return "", false
}

// cachedVersion returns the cached result when it is still within the
// check interval.
func (c *Checker) cachedVersion() (string, bool) {
	info, err := os.Stat(c.cacheFile)
	if err != nil || time.Since(info.ModTime()) > c.interval {
		return "", false
	}
	data, err := os.ReadFile(c.cacheFile)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

func (c *Checker) writeCache(version string) {
	if err := os.MkdirAll(filepath.Dir(c.cacheFile), 0755); err != nil {
		return
	}
	_ = os.WriteFile(c.cacheFile, []byte(version+"\n"), 0644)
}

func (c *Checker) fetchVersion(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return ""
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// newerThan compares dotted version strings numerically, ignoring a
// leading "v". Non-numeric segments compare as zero.
func newerThan(a, b string) bool {
	as := versionParts(a)
	bs := versionParts(b)
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			return av > bv
		}
	}
	return false
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	// Strip prerelease or build suffixes.
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	fields := strings.Split(v, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err == nil {
			parts[i] = n
		}
	}
	return parts
}
