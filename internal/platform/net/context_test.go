package net

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	if RequestID(ctx) != "req-9" {
		t.Fatalf("request id lost")
	}
	if RequestID(WithRequestID(context.Background(), "")) != "" {
		t.Fatalf("empty id should not be stored")
	}
}

func TestIdentity(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatalf("background has no identity")
	}
	if _, ok := IdentityFrom(WithIdentity(context.Background(), Identity{Name: "ghost"})); ok {
		t.Fatalf("anonymous identity must not be stored")
	}
	ctx := WithIdentity(context.Background(), Identity{ID: "u1", Name: "Asha", Department: "CSE"})
	got, ok := IdentityFrom(ctx)
	if !ok || got.Name != "Asha" || UserID(ctx) != "u1" {
		t.Fatalf("identity = %+v %v", got, ok)
	}
}

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		id   Identity
		want bool
	}{
		{Identity{ID: "1", Admin: true}, true},
		{Identity{ID: "2", Email: "admin@uni.edu"}, true},
		{Identity{ID: "3", Email: "dept.admin.cse@uni.edu"}, true},
		{Identity{ID: "4", Email: "student@uni.edu"}, false},
		{Identity{}, false},
	}
	for _, tc := range cases {
		if got := tc.id.IsAdmin(); got != tc.want {
			t.Fatalf("IsAdmin(%+v) = %v", tc.id, got)
		}
	}
}
