package client

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"itemserver/api"
	"itemserver/catalog"
	"itemserver/config"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newServer(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	srv := httptest.NewServer(api.NewHandler(catalog.NewService(nil), cfg))
	t.Cleanup(srv.Close)
	return New(srv.URL+cfg.Server.PathPrefix+"/", 5*time.Second)
}

func TestClientGetCallObject(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	item, err := c.GetCallObject(ctx, "Mac")
	if err != nil {
		t.Fatalf("GetCallObject: %v", err)
	}
	if item == nil || item.Price != 3888000 {
		t.Errorf("item = %+v", item)
	}

	item, err = c.GetCallObject(ctx, "Nothing Here")
	if err != nil {
		t.Fatalf("GetCallObject miss: %v", err)
	}
	if item != nil {
		t.Errorf("miss returned %+v", item)
	}
}

func TestClientGetCallList(t *testing.T) {
	list, err := newServer(t).GetCallList(context.Background())
	if err != nil {
		t.Fatalf("GetCallList: %v", err)
	}
	if len(list.Items) != catalog.Size || list.Items[0].Title != "Mac" || list.Items[4].Title != "AirPods" {
		t.Errorf("list = %+v", list)
	}
}

func TestClientPostCall(t *testing.T) {
	c := newServer(t)
	req := catalog.UserRequest{Username: "kim", Password: "pw"}

	item, err := c.PostCall(context.Background(), "AirPods", req)
	if err != nil {
		t.Fatalf("PostCall: %v", err)
	}
	if item == nil || item.Price != 350000 {
		t.Errorf("item = %+v", item)
	}

	item, err = c.PostCall(context.Background(), "Air Pods", req)
	if err != nil {
		t.Fatalf("PostCall miss: %v", err)
	}
	if item != nil {
		t.Errorf("miss returned %+v", item)
	}
}

func TestClientExchangeCall(t *testing.T) {
	list, err := newServer(t).ExchangeCall(context.Background(), "any-token", catalog.UserRequest{})
	if err != nil {
		t.Fatalf("ExchangeCall: %v", err)
	}
	if len(list.Items) != catalog.Size {
		t.Errorf("got %d items", len(list.Items))
	}
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).GetCallList(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Status != http.StatusTeapot || se.Body != "nope\n" {
		t.Errorf("StatusError = %+v", se)
	}
}
