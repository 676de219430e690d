package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"foxcap/internal/catalog"
	"foxcap/internal/fetch"
)

const hostCheckTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCatalog verifies the catalog database exists, opens cleanly, and
// holds at least one episode.
func CheckCatalog(ctx context.Context, path string) Result {
	const name = "Catalog"

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing; run 'foxcap catalog import')", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	store, err := catalog.Open(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	seriesCount, episodeCount, err := store.Counts(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if episodeCount == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (empty; run 'foxcap catalog import')", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d series, %d episodes", seriesCount, episodeCount)}
}

// CheckCaptionHost verifies the caption host answers HTTP requests. Client
// errors such as 403 or 404 on the base URL still count as reachable.
func CheckCaptionHost(ctx context.Context, client *fetch.Client, baseURL string) Result {
	const name = "Caption host"

	checkCtx, cancel := context.WithTimeout(ctx, hostCheckTimeout)
	defer cancel()

	status, err := client.Probe(checkCtx, baseURL+"/")
	if err != nil {
		return Result{Name: name, Detail: summarizeHostError(err)}
	}
	if status >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("%s (server error %d)", baseURL, status)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable, %d)", baseURL, status)}
}

func summarizeHostError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out (host unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out (host unreachable)"
	}
	return err.Error()
}
