package restapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientHideExtractClear(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/hide_message", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("message") != "hello" || r.FormValue("password") != "pw" {
			http.Error(w, "missing fields", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte("stego-bytes"))
	})
	mux.HandleFunc("/api/extract_message", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte("hello"))
	})
	mux.HandleFunc("/api/clear_message", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte("cleared-bytes"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	hidden, err := client.Hide([]byte("wav-in"), "hello", "pw", "wav16", 1)
	if err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if string(hidden) != "stego-bytes" {
		t.Fatalf("Hide = %q, want %q", hidden, "stego-bytes")
	}

	message, err := client.Extract(hidden, "pw", "wav16", 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if message != "hello" {
		t.Fatalf("Extract = %q, want %q", message, "hello")
	}

	cleared, err := client.Clear(hidden, "pw", "wav16", 1)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if string(cleared) != "cleared-bytes" {
		t.Fatalf("Clear = %q, want %q", cleared, "cleared-bytes")
	}
}

func TestClientHideServerErrorSurfacesBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/hide_message", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"incorrect password"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Hide([]byte("wav-in"), "msg", "wrong", "wav16", 1)
	if err == nil {
		t.Fatal("Hide with server error should fail")
	}
	if !strings.Contains(err.Error(), "incorrect password") {
		t.Fatalf("Hide error = %q, want it to carry the server's response body", err)
	}
}

func TestClientPingUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if err := client.Ping(); err == nil {
		t.Fatal("Ping against nothing listening should fail")
	}
}
