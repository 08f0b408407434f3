package db

import (
	"context"
	"testing"
)

func TestTxFromContext_Empty(t *testing.T) {
	_, ok := TxFromContext(context.Background())
	if ok {
		t.Error("expected no transaction on empty context")
	}
}

func TestConnFromContext_Empty(t *testing.T) {
	_, ok := ConnFromContext(context.Background())
	if ok {
		t.Error("expected no connection on empty context")
	}
}

func TestWithConn_NilRoundTrip(t *testing.T) {
	// WithConn stores whatever it is given; a nil conn is still "present".
	ctx := WithConn(context.Background(), nil)
	conn, ok := ConnFromContext(ctx)
	if !ok {
		t.Fatal("expected connection to be present")
	}
	if conn != nil {
		t.Error("expected stored nil connection")
	}
}
