package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/recera/silk/cmd/silk/internal/config"
	"github.com/recera/silk/internal/cache"
	"github.com/recera/silk/pkg/compiler"
	"github.com/recera/silk/pkg/host"
	"github.com/recera/silk/pkg/registry"
)

type devServer struct {
	host     string
	port     int
	config   *config.Config
	watcher  *fsnotify.Watcher
	compiler *compiler.Compiler
	cache    *cache.Cache
	sink     *registry.Registry

	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader

	buildMutex sync.Mutex
	units      map[string]string // unit name -> compiled HTML
	unitOrder  []string
}

func newDevCommand() *cobra.Command {
	var port int
	var hostFlag string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Starts a development server with file watching and live reload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runDev(hostFlag, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&hostFlag, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the project (defaults to current)")

	return cmd
}

func runDev(hostFlag string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Warn("failed to load silk.yaml, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	// CLI flags take precedence over configuration.
	if port == 0 {
		port = cfg.Dev.Port
	}
	if hostFlag == "" {
		hostFlag = cfg.Dev.Host
	}

	server := &devServer{
		host:      hostFlag,
		port:      port,
		config:    cfg,
		compiler:  compiler.New(),
		cache:     cache.New(),
		sink:      registry.New(),
		wsClients: make(map[*websocket.Conn]bool),
		units:     make(map[string]string),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Dev mode: any origin may connect.
				return true
			},
		},
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	log.Info("compiling source units...")
	server.rebuildAll()

	go server.watchFiles()

	mux := http.NewServeMux()
	mux.HandleFunc("/silk/live", server.handleWebSocket)
	mux.HandleFunc("/silk.css", server.serveCSS)
	mux.HandleFunc("/", server.servePage)

	addr := fmt.Sprintf("%s:%d", hostFlag, port)
	log.Info("dev server running", "url", "http://"+addr)

	srv := &http.Server{Addr: addr, Handler: mux}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutting down dev server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *devServer) setupWatcher() error {
	return filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return s.watcher.Add(path)
		}
		return nil
	})
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event
	var mu sync.Mutex

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.isRelevantFile(event.Name) {
				continue
			}

			mu.Lock()
			pendingEvents = append(pendingEvents, event)
			mu.Unlock()

			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Error("watcher error", "err", err)

		case <-debounce.C:
			mu.Lock()
			events := pendingEvents
			pendingEvents = nil
			mu.Unlock()

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *devServer) isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".slk" || ext == ".html" || ext == ".yaml"
}

func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	changed := false
	for _, event := range events {
		switch strings.ToLower(filepath.Ext(event.Name)) {
		case ".slk":
			name := strings.TrimSuffix(filepath.Base(event.Name), ".slk")
			if s.cache.Invalidate(name) {
				log.Info("invalidated cached unit", "unit", name)
			}
			changed = true
		case ".html", ".yaml":
			changed = true
		}
	}
	if !changed {
		return
	}

	log.Info("source changed, recompiling...")
	s.rebuildAll()
	s.notifyClients("reload", map[string]interface{}{"target": "page"})
}

// rebuildAll compiles every source unit, reusing cached output for units
// whose source is unchanged. A unit that fails to parse is logged and
// skipped; the remaining units still render.
func (s *devServer) rebuildAll() {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	files, err := filepath.Glob(filepath.Join(s.config.SourceDir, "*.slk"))
	if err != nil {
		log.Error("failed to list source units", "err", err)
		return
	}

	s.sink.Reset()
	s.units = make(map[string]string)
	s.unitOrder = nil

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Error("failed to read unit", "file", file, "err", err)
			continue
		}
		source := string(data)
		name := strings.TrimSuffix(filepath.Base(file), ".slk")

		out, ok := s.cache.Get(name, source)
		if !ok {
			out, err = s.compiler.Compile(source)
			if err != nil {
				log.Error("compile failed, skipping unit", "file", file, "err", err)
				continue
			}
			s.cache.Put(name, source, out)
		}

		s.sink.Append(name, out.CSS)
		s.units[name] = out.HTML
		s.unitOrder = append(s.unitOrder, name)
	}

	stats := s.cache.Stats()
	log.Info("build complete", "units", len(s.unitOrder), "cache_hits", stats.Hits, "cache_misses", stats.Misses)
}

func (s *devServer) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.buildMutex.Lock()
	page := s.composePage()
	s.buildMutex.Unlock()

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(page))
}

// composePage builds the page served at /. A configured page template is
// processed through the host package; otherwise a minimal page collects
// every compiled fragment under the default container.
func (s *devServer) composePage() string {
	if s.config.Page != "" {
		if data, err := os.ReadFile(s.config.Page); err == nil {
			doc := string(data)

			// Place each file unit's markup into the configured container
			// (falling back to the default one) before the embedded blocks
			// are processed.
			for _, name := range s.unitOrder {
				placed, ok := host.Insert(doc, s.config.Target, s.units[name])
				if !ok {
					placed, _ = host.Insert(doc, host.DefaultTarget, s.units[name])
				}
				doc = placed
			}

			proc := host.NewProcessor(
				host.WithCompiler(s.compiler),
				host.WithRegistry(s.sink),
			)
			return injectReloadScript(proc.Process(doc))
		}
		log.Warn("page template unreadable, serving default page", "page", s.config.Page)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>silk dev</title>\n")
	b.WriteString("<link rel=\"stylesheet\" href=\"/silk.css\">\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<div id=%q>\n", host.DefaultTarget)
	for _, name := range s.unitOrder {
		b.WriteString(s.units[name])
		b.WriteString("\n")
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return injectReloadScript(b.String())
}

func (s *devServer) serveCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(s.sink.CSS()))
}

const reloadScript = `<script>
(function () {
	var proto = location.protocol === "https:" ? "wss://" : "ws://";
	var ws = new WebSocket(proto + location.host + "/silk/live");
	ws.onmessage = function (ev) {
		var msg = JSON.parse(ev.data);
		if (msg.type === "RELOAD") location.reload();
	};
})();
</script>`

func injectReloadScript(page string) string {
	if i := strings.Index(strings.ToLower(page), "</body>"); i >= 0 {
		return page[:i] + reloadScript + "\n" + page[i:]
	}
	return page + reloadScript
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade error", "err", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("websocket error", "err", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			conn.WriteJSON(map[string]interface{}{"type": "ACK"})
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]interface{}) {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Error("failed to notify client", "err", err)
		}
	}
}
