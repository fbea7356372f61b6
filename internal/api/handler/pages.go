package handler

import (
	"net/http"
)

// PageHandler serves the minimal HTML shells behind the path guard. The real
// storefront and dashboard UI live in a separate frontend; these pages exist
// so the guard has concrete paths to protect.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const loginPage = `<!DOCTYPE html>
<html lang="hr">
<head><meta charset="utf-8"><title>La Delta - Prijava</title></head>
<body><h1>Prijava</h1><div id="login-root"></div></body>
</html>
`

const dashboardPage = `<!DOCTYPE html>
<html lang="hr">
<head><meta charset="utf-8"><title>La Delta - Narudžbe</title></head>
<body><h1>Narudžbe</h1><div id="dashboard-root"></div></body>
</html>
`

const indexPage = `<!DOCTYPE html>
<html lang="hr">
<head><meta charset="utf-8"><title>La Delta</title></head>
<body><h1>Slastičarnica La Delta</h1></body>
</html>
`

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	servePage(w, loginPage)
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	servePage(w, dashboardPage)
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	servePage(w, indexPage)
}

func servePage(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}
