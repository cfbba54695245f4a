package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// spaHandler раздаёт собранный фронтенд. Неизвестные пути отдают index.html,
// маршрутизацию дальше выполняет клиент.
type spaHandler struct {
	root       string
	fileServer http.Handler
}

func newSPAHandler(root string) *spaHandler {
	return &spaHandler{
		root:       root,
		fileServer: http.FileServer(http.Dir(root)),
	}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	info, err := os.Stat(name)
	if err != nil || info.IsDir() && r.URL.Path != "/" {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}

	h.fileServer.ServeHTTP(w, r)
}
