package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_MethodDispatch(t *testing.T) {
	r := New()

	r.Get("/sales/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/sales/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET: expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sales/", nil))
	if w.Code != http.StatusCreated {
		t.Errorf("POST: expected status 201, got %d", w.Code)
	}
}

func TestRouter_PathValue(t *testing.T) {
	r := New()

	var got string
	r.Delete("/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/categories/12", nil))

	if got != "12" {
		t.Errorf("expected path value 12, got %q", got)
	}
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string

	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "before-"+name)
				next.ServeHTTP(w, r)
				order = append(order, "after-"+name)
			})
		}
	}

	r := New(mark("global"))
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mark("route"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	expected := []string{"before-global", "before-route", "handler", "after-route", "after-global"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d elements, got %d", len(expected), len(order))
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("position %d: expected %s, got %s", i, v, order[i])
		}
	}
}

func TestRouter_GroupMiddlewareOnlyAppliesToGroupRoutes(t *testing.T) {
	groupCalls := 0
	groupMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			groupCalls++
			next.ServeHTTP(w, r)
		})
	}

	r := New()
	r.Get("/open", func(w http.ResponseWriter, r *http.Request) {})

	g := r.Group(groupMiddleware)
	g.Get("/grouped", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/open", nil))
	if groupCalls != 0 {
		t.Errorf("group middleware ran on a non-group route")
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/grouped", nil))
	if groupCalls != 1 {
		t.Errorf("expected group middleware to run once, got %d", groupCalls)
	}
}
