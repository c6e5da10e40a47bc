package apiserver

import (
	_ "embed"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// serveOpenAPI returns the embedded API description. The document is
// static, so clients may cache it for the life of the process.
func serveOpenAPI(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "application/yaml")
		h.Set("Content-Length", strconv.Itoa(len(openAPIDocument)))
		h.Set("Cache-Control", "public, max-age=3600")
		if _, err := w.Write(openAPIDocument); err != nil {
			logger.Debug("Client went away during OpenAPI write", zap.Error(err))
		}
	}
}
