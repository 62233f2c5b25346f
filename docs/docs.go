// Package docs registers the OpenAPI document with swag so echo-swagger can
// serve it at /swagger/doc.json. Import it for its side effect.
package docs

import (
	"encoding/json"
	"log/slog"

	"posrelay/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo is the swag registration of the order relay API.
var SwaggerInfo = &openAPIDoc{}

type openAPIDoc struct{}

// ReadDoc renders the embedded OpenAPI document as JSON.
func (openAPIDoc) ReadDoc() string {
	doc, err := servers.GetSwagger()
	if err != nil {
		slog.Error("Failed to load OpenAPI document", "error", err)
		return "{}"
	}
	data, err := json.Marshal(doc)
	if err != nil {
		slog.Error("Failed to encode OpenAPI document", "error", err)
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, SwaggerInfo)
}
