// Command serve hosts the WebGL build for local development.
//
//	GOOS=js GOARCH=wasm go build -o web/main.wasm ./cmd/webgl
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
//	go run ./cmd/serve -dir web
package main

import (
	"context"
	"embed"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

//go:embed static/index.html
var static embed.FS

func main() {
	addr := flag.String("addr", ":8080", "Address to listen on")
	dir := flag.String("dir", "web", "Directory holding main.wasm and wasm_exec.js")
	flag.Parse()

	srv := &http.Server{Addr: *addr, Handler: logRequests(newHandler(*dir))}

	go func() {
		log.Printf("Serving %s on http://localhost%s", *dir, *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

// newHandler serves the embedded page at / and everything else from dir.
func newHandler(dir string) http.Handler {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(dir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			http.ServeFileFS(w, r, static, "static/index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
