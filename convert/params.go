package convert

import (
	"net/url"
	"strings"
)

// Pair is one query parameter.
type Pair struct {
	Key   string
	Value string
}

func (p Pair) String() string {
	return p.Key + "=" + p.Value
}

// Params is an ordered list of query parameters. Keys may repeat.
type Params []Pair

// Keys returns the keys in order.
func (ps Params) Keys() []string {
	res := make([]string, len(ps))
	for i := range ps {
		res[i] = ps[i].Key
	}
	return res
}

// Get returns the value of the first pair with key key.
func (ps Params) Get(key string) (string, bool) {
	for i := range ps {
		if ps[i].Key == key {
			return ps[i].Value, true
		}
	}
	return "", false
}

// Values returns ps as url.Values. url.Values does its own escaping in
// Encode, so ps should hold raw, unencoded values.
func (ps Params) Values() url.Values {
	q := make(url.Values, len(ps))
	ps.AppendTo(q)
	return q
}

// AppendTo adds every pair to q, in order.
func (ps Params) AppendTo(q url.Values) {
	for _, p := range ps {
		q.Add(p.Key, p.Value)
	}
}

// String joins the pairs as key=value&key=value without any escaping.
func (ps Params) String() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}
