package main

import (
	"encoding/base32"
	"encoding/json"
	"errors"
	"strings"

	"github.com/miekg/dns"
)

// op is the GST protocol's request kind, carried as a DNS query-name
// label the same way the teacher's resolver carried the upstream
// selection purely through label structure.
type op string

const (
	opAdd op = "add"
	opSub op = "sub"
	opSuf op = "suf"
	opEnu op = "enum"
)

var payloadEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

// request is a decoded GST query: <namespace labels, reversed>.<payload>.<op>.gst.
type request struct {
	Namespace string
	Op        op
	Payload   []byte
}

var errMalformedName = errors.New("malformed gst query name")

// decodeQueryName splits a DNS question name into a GST request. The
// last non-root label must be "gst", the label before it the op, the
// one before that the base32hex payload, and everything remaining
// (read right to left) the namespace.
func decodeQueryName(qname string) (request, error) {
	name := dns.Fqdn(qname)
	name = strings.TrimSuffix(name, ".")
	labels := dns.SplitDomainName(name)

	if len(labels) < 4 || labels[len(labels)-1] != "gst" {
		return request{}, errMalformedName
	}

	opLabel := labels[len(labels)-2]
	payloadLabel := labels[len(labels)-3]
	nsLabels := labels[:len(labels)-3]

	if len(nsLabels) == 0 {
		return request{}, errMalformedName
	}

	payload, err := payloadEncoding.DecodeString(strings.ToUpper(payloadLabel))
	if err != nil {
		return request{}, errMalformedName
	}

	r := request{
		Namespace: strings.Join(reverseLabels(nsLabels), "."),
		Op:        op(opLabel),
		Payload:   payload,
	}

	switch r.Op {
	case opAdd, opSub, opSuf, opEnu:
	default:
		return request{}, errMalformedName
	}

	return r, nil
}

// encodeQueryName is the inverse of decodeQueryName, used by tests
// and by any client built against this package.
func encodeQueryName(r request) string {
	nsLabels := reverseLabels(strings.Split(r.Namespace, "."))
	payload := strings.ToLower(payloadEncoding.EncodeToString(r.Payload))

	labels := append([]string{}, nsLabels...)
	labels = append(labels, payload, string(r.Op), "gst")
	return dns.Fqdn(strings.Join(labels, "."))
}

func reverseLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[len(labels)-1-i] = l
	}
	return out
}

// queryResult is the JSON payload carried in the TXT answer.
type queryResult struct {
	OK     bool            `json:"ok"`
	ID     int             `json:"id,omitempty"`
	Result bool            `json:"result,omitempty"`
	Groups map[string][]string `json:"groups,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (q queryResult) marshal() string {
	b, err := json.Marshal(q)
	if err != nil {
		return `{"ok":false,"error":"internal serialization error"}`
	}
	return string(b)
}

func unmarshalQueryResult(s string) (queryResult, error) {
	var q queryResult
	err := json.Unmarshal([]byte(s), &q)
	return q, err
}
