package main

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeQueryNameRoundTrip(t *testing.T) {
	cases := []request{
		{Namespace: "acme", Op: opAdd, Payload: []byte("hello")},
		{Namespace: "west.acme", Op: opSub, Payload: []byte("banana")},
		{Namespace: "east.acme", Op: opSuf, Payload: []byte{}},
		{Namespace: "acme", Op: opEnu, Payload: []byte("abc")},
	}

	for _, want := range cases {
		encoded := encodeQueryName(want)
		got, err := decodeQueryName(encoded)
		if err != nil {
			t.Fatalf("decodeQueryName(%q) returned error: %s", encoded, err)
		}
		if got.Namespace != want.Namespace {
			t.Errorf("namespace = %q, want %q", got.Namespace, want.Namespace)
		}
		if got.Op != want.Op {
			t.Errorf("op = %q, want %q", got.Op, want.Op)
		}
		if !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("payload = %q, want %q", got.Payload, want.Payload)
		}
	}
}

func TestDecodeQueryNameRejectsMalformed(t *testing.T) {
	bad := []string{
		"gst.",
		"add.gst.",
		"payload.add.gst.",
		"payload.bogusop.acme.gst.",
		"not-even-close.",
	}

	for _, name := range bad {
		if _, err := decodeQueryName(name); err == nil {
			t.Errorf("decodeQueryName(%q) expected error, got nil", name)
		}
	}
}

func TestQueryResultMarshalRoundTrip(t *testing.T) {
	q := queryResult{OK: true, Groups: map[string][]string{"1,2": {"ban", "ana"}}}
	s := q.marshal()

	got, err := unmarshalQueryResult(s)
	if err != nil {
		t.Fatalf("unmarshalQueryResult returned error: %s", err)
	}
	if !got.OK {
		t.Errorf("OK = false, want true")
	}
	if len(got.Groups["1,2"]) != 2 {
		t.Errorf("groups[1,2] = %v, want 2 entries", got.Groups["1,2"])
	}
}
