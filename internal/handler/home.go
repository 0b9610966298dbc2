package handler

import (
	"net/http"
	"path/filepath"
)

// Pages serves the static HTML pages and assets from a directory.
type Pages struct {
	dir string
}

// NewPages creates a Pages handler rooted at dir.
func NewPages(dir string) *Pages {
	return &Pages{dir: dir}
}

// HandleHome serves index.html.
func (p *Pages) HandleHome(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(p.dir, "index.html"))
}

// HandleDashboardProfile serves dashboardprofile.html.
func (p *Pages) HandleDashboardProfile(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(p.dir, "dashboardprofile.html"))
}

// Assets returns a file server for everything else in the directory.
func (p *Pages) Assets() http.Handler {
	return http.FileServer(http.Dir(p.dir))
}
