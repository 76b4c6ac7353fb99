package cli

import (
	"context"
	stderrors "errors"
	"html/template"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/io"
	"github.com/matzehuels/taxoviz/pkg/observability"
	"github.com/matzehuels/taxoviz/pkg/render/html"
	"github.com/matzehuels/taxoviz/pkg/taxonomy"
	"github.com/matzehuels/taxoviz/pkg/traverse"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand starts a local server that renders branches on request.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		language string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve branch visualizations over HTTP",
		Long: `Serve loads the taxonomy once and renders pages on demand:

  /              index of top-level concepts
  /view?id=ID    force-graph page for the branch under ID
  /graph?id=ID   the same branch as JSON
  /healthz       liveness check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultConfig().Input
			if len(args) == 1 {
				input = args[0]
			}
			tax, err := taxonomy.Load(input, taxonomy.Options{Language: language})
			if err != nil {
				return err
			}
			srv := newServer(tax, serverOptions{MaxDepth: maxDepth}, c.Logger)
			return srv.listenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&language, "lang", "", "preferred label language (e.g. en)")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "maximum traversal depth (0 = unlimited)")
	return cmd
}

type serverOptions struct {
	MaxDepth int
	HTML     html.Options
}

// server answers view and graph requests from one loaded taxonomy.
type server struct {
	tax    *taxonomy.Taxonomy
	opts   serverOptions
	logger *log.Logger
	router chi.Router
}

func newServer(tax *taxonomy.Taxonomy, opts serverOptions, logger *log.Logger) *server {
	s := &server{tax: tax, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observe)
	r.Get("/", s.handleIndex)
	r.Get("/view", s.handleView)
	r.Get("/graph", s.handleGraph)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	s.router = r
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// listenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	hs := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}

	printSuccess("Serving %s", StyleValue.Render("http://"+ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<ul>
{{- range .Roots}}
<li><a href="/view?id={{.ID}}">{{.Label}}</a> <small>(<a href="/graph?id={{.ID}}">json</a>)</small></li>
{{- end}}
</ul>
</body>
</html>
`))

type indexRoot struct {
	ID    string
	Label string
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, title := s.tax.Scheme()
	if title == "" {
		title = id
	}
	data := struct {
		Title string
		Roots []indexRoot
	}{Title: title}
	for _, root := range s.tax.Roots() {
		data.Roots = append(data.Roots, indexRoot{ID: root, Label: s.tax.Label(root)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, data); err != nil {
		s.logger.Warn("render index", "error", err)
	}
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	id, ok := s.concept(w, r)
	if !ok {
		return
	}
	g, err := traverse.Traverse(s.tax, id, traverse.Options{MaxDepth: s.opts.MaxDepth})
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := html.Render(g, s.opts.HTML)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := s.concept(w, r)
	if !ok {
		return
	}
	g, err := traverse.Traverse(s.tax, id, traverse.Options{MaxDepth: s.opts.MaxDepth})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := io.WriteJSON(g, w); err != nil {
		s.logger.Warn("write graph", "id", id, "error", err)
	}
}

// concept reads the id query parameter and writes 400 or 404 when it is
// missing or names nothing the taxonomy knows.
func (s *server) concept(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return "", false
	}
	if _, ok := s.tax.Concept(id); ok {
		return id, true
	}
	if _, ok := s.tax.Lookup(id); ok || slices.Contains(s.tax.Roots(), id) {
		return id, true
	}
	http.Error(w, "unknown concept "+id, http.StatusNotFound)
	return "", false
}

func (s *server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	http.Error(w, errors.UserMessage(err), http.StatusInternalServerError)
}
