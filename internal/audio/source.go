package audio

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"focusflow/internal/logging"
	"focusflow/pkg/utils"
)

// ErrCancelled is returned when a load is superseded before it finishes.
var ErrCancelled = errors.New("load cancelled")

const readChunk = 32 * 1024

// Fetcher reads the full contents of a track source.
type Fetcher func(source string, cancel <-chan struct{}) ([]byte, error)

// FetchSource loads a local file or an http(s) URL, checking cancel
// between reads.
func FetchSource(source string, cancel <-chan struct{}) ([]byte, error) {
	if utils.IsRemoteSource(source) {
		return fetchURL(source, cancel)
	}
	return fetchFile(utils.ExpandHome(source), cancel)
}

func fetchFile(path string, cancel <-chan struct{}) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat error: %w", err)
	}

	data, err := readAll(file, info.Size(), cancel)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return data, nil
}

func fetchURL(url string, cancel <-chan struct{}) ([]byte, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	data, err := readAll(resp.Body, resp.ContentLength, cancel)
	if err != nil {
		return nil, fmt.Errorf("download error: %w", err)
	}
	return data, nil
}

func readAll(r io.Reader, size int64, cancel <-chan struct{}) ([]byte, error) {
	if size < 0 {
		size = 0
	}
	data := make([]byte, 0, size)
	buf := make([]byte, readChunk)
	start := time.Now()

	for {
		select {
		case <-cancel:
			return nil, ErrCancelled
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	logging.Debugf("fetched %d bytes in %s", len(data), time.Since(start).Round(time.Millisecond))
	return data, nil
}
