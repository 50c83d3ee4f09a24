// Package web serves the catalog pages and their JSON payloads. Every
// request loads fresh sheet data; nothing is cached between requests.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"sheetsite/catalog"
	"sheetsite/config"
	"sheetsite/internal/textutil"
	"sheetsite/loader"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageLoader is implemented by *loader.Loader.
type PageLoader interface {
	Load(ctx context.Context, cfg loader.PageConfig) loader.PageData
}

type Server struct {
	loader PageLoader
	cfg    config.Config
	lookup config.LookupFunc
	logger *zap.Logger
	mux    *http.ServeMux
}

type pageLinkView struct {
	Title string
	Link  string
}

type sectionView struct {
	Name  string
	Pages []pageLinkView
}

type homePageView struct {
	Title    string
	Sections []sectionView
}

type itemView struct {
	Name         string
	Description  string
	ImageURL     string
	ImageAlt     string
	Price        string
	Details      string
	Brand        string
	Model        string
	Features     []string
	Availability string
	ContactInfo  string
	Category     string
	PDF          string
}

type catalogPageView struct {
	Title        string
	Section      string
	CategoryInfo catalog.CategoryInfo
	Items        []itemView
	Error        string
}

func NewServer(pageLoader PageLoader, cfg config.Config, lookup config.LookupFunc, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &Server{
		loader: pageLoader,
		cfg:    cfg,
		lookup: lookup,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleHome)
	mux.HandleFunc("GET /healthz", server.handleHealth)
	mux.HandleFunc("GET /api/pages/{section}/{serviceType}", server.handleAPIPage)
	mux.HandleFunc("GET /{section}/{serviceType}", server.handleCatalogPage)
	server.mux = mux

	return withRequestLogging(server, logger)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	bySection := make(map[string][]pageLinkView)
	for _, page := range s.cfg.Pages {
		section := strings.ToLower(strings.TrimSpace(page.Section))
		bySection[section] = append(bySection[section], pageLinkView{
			Title: page.DefaultInfo.Title,
			Link:  "/" + page.Key(),
		})
	}

	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	view := homePageView{Title: "Equipment and Site Services"}
	for _, name := range names {
		view.Sections = append(view.Sections, sectionView{Name: name, Pages: bySection[name]})
	}
	s.render(w, "home.html", view)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleAPIPage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.findPage(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := s.loader.Load(r.Context(), page.PageConfig(s.lookup))
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCatalogPage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.findPage(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := s.loader.Load(r.Context(), page.PageConfig(s.lookup))

	items := make([]itemView, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, newItemView(item))
	}

	title := textutil.FirstNonEmpty(data.CategoryInfo.Title, page.DefaultInfo.Title)
	view := catalogPageView{
		Title:        title,
		Section:      textutil.TitleCase(page.Section),
		CategoryInfo: data.CategoryInfo,
		Items:        items,
		Error:        data.Error,
	}
	s.render(w, "catalog.html", view)
}

func (s *Server) findPage(r *http.Request) (config.Page, bool) {
	key := config.PageKey(r.PathValue("section"), r.PathValue("serviceType"))
	return s.cfg.FindPage(key)
}

func (s *Server) render(w http.ResponseWriter, pageTemplate string, data any) {
	if err := renderTemplate(w, pageTemplate, data); err != nil {
		s.logger.Error("render page failed", zap.String("template", pageTemplate), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func newItemView(item catalog.Item) itemView {
	return itemView{
		Name:         item.Name(),
		Description:  item.Description(),
		ImageURL:     item.ImageURL(),
		ImageAlt:     textutil.FirstNonEmpty(item.Get(catalog.FieldImageAlt), item.Name()),
		Price:        item.Get(catalog.FieldPrice),
		Details:      item.Get(catalog.FieldDetails),
		Brand:        item.Get(catalog.FieldBrand),
		Model:        item.Get(catalog.FieldModel),
		Features:     splitFeatures(item.Get(catalog.FieldFeatures)),
		Availability: item.Get(catalog.FieldAvailability),
		ContactInfo:  item.Get(catalog.FieldContactInfo),
		Category:     item.Get(catalog.FieldCategory),
		PDF:          item.Get(catalog.FieldPDF),
	}
}

// splitFeatures accepts one feature per line or a semicolon separated list.
func splitFeatures(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	features := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			features = append(features, field)
		}
	}
	return features
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"titleCase": textutil.TitleCase,
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(started)))
	})
}
