package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// query serializes parameters in the order they are added, skipping zero
// values. url.Values is not used because it sorts keys.
type query struct {
	pairs []string
}

func (q *query) addString(key, value string) {
	if value == "" {
		return
	}
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *query) addInt(key string, value int) {
	if value == 0 {
		return
	}
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+strconv.Itoa(value))
}

// suffix returns "?k=v&..." or "" when nothing was added.
func (q *query) suffix() string {
	if len(q.pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(q.pairs, "&")
}
