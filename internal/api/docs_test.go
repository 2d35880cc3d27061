package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	"github.com/campuscard/portal-gateway/internal/api/handler"
)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("swagger document is not valid JSON: %v", err)
	}

	h := portalHandlers{
		auth:    handler.NewAuthHandler(nil, zerolog.Nop()),
		student: handler.NewStudentHandler(nil, zerolog.Nop()),
		admin:   handler.NewAdminHandler(nil, zerolog.Nop()),
		public:  handler.NewPublicHandler(nil),
	}
	for _, r := range portalRoutes(h) {
		if r.path == "/" {
			continue // alias of the login page
		}
		path := r.path
		for _, seg := range strings.Split(path, "/") {
			if strings.HasPrefix(seg, ":") {
				path = strings.Replace(path, seg, "{"+seg[1:]+"}", 1)
			}
		}
		if _, ok := doc.Paths[path][strings.ToLower(r.method)]; !ok {
			t.Errorf("%s %s is not documented", r.method, path)
		}
	}
}
