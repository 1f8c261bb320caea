package guard

import (
	"context"
	"testing"
	"time"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("return:42", []byte(`{"lines":[{"order_item_id":10,"quantity":2}]}`))
	b := Key("return:42", []byte(`{"lines":[{"order_item_id":10,"quantity":2}]}`))
	if a != b {
		t.Errorf("same payload produced different keys: %s vs %s", a, b)
	}

	c := Key("return:42", []byte(`{"lines":[{"order_item_id":10,"quantity":3}]}`))
	if a == c {
		t.Error("different payloads must produce different keys")
	}

	d := Key("return:43", []byte(`{"lines":[{"order_item_id":10,"quantity":2}]}`))
	if a == d {
		t.Error("different scopes must produce different keys")
	}
}

func TestNilClientFailsOpen(t *testing.T) {
	g := New(nil, time.Minute)
	ctx := context.Background()

	key := Key("return:1", []byte("{}"))
	if !g.Claim(ctx, key) {
		t.Error("claim without redis must succeed")
	}
	if !g.Claim(ctx, key) {
		t.Error("repeat claim without redis must also succeed")
	}
	g.Release(ctx, key)
}
