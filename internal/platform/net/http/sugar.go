package http

import "net/http"

// GetJSON mounts fn for GET
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, NoBodyHandler(fn))
}

// DeleteJSON mounts fn for DELETE
func DeleteJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Delete(path, NoBodyHandler(fn))
}

// PostJSON mounts fn for POST with a bound T body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}
