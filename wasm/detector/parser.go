//go:build js && wasm

// Package detector turns pigo face detections into cursor positions so the
// particle field can follow a webcam face instead of the mouse.
package detector

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"syscall/js"
	"time"
)

// fetchCascade loads a cascade file relative to the page origin, resolved
// through `location.href`. The timestamp query defeats aggressive caches.
func fetchCascade(path string) ([]byte, error) {
	href := js.Global().Get("location").Get("href")
	u, err := url.Parse(href.String())
	if err != nil {
		return nil, err
	}
	u.Path = path
	u.RawQuery = fmt.Sprint(time.Now().UnixNano())

	resp, err := http.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", u.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
