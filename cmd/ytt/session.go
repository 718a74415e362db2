package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/goccy/go-json"
)

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// savedSession is the on-disk session. Cookies only apply to the backend they were issued by.
type savedSession struct {
	APIURL  string        `json:"apiUrl"`
	Cookies []savedCookie `json:"cookies"`
}

func loadSession(path, apiURL string) ([]*http.Cookie, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s savedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if s.APIURL != apiURL {
		return nil, nil
	}
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	return cookies, nil
}

// saveSession writes the cookies for apiURL. An empty jar removes the file.
func saveSession(path, apiURL string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	s := savedSession{APIURL: apiURL}
	for _, c := range cookies {
		s.Cookies = append(s.Cookies, savedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
