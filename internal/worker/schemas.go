package worker

import (
	"github.com/qri-io/jsonschema"

	eventpkg "github.com/stormhead-org/community/internal/event"
)

var schemas = map[string]*jsonschema.Schema{
	eventpkg.SERVER_CREATE: jsonschema.Must(`{
		"type": "object",
		"properties": {
			"server_id": {"type": "integer", "minimum": 1},
			"profile_id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1}
		},
		"required": ["server_id", "profile_id", "name"]
	}`),
	eventpkg.SERVER_UPDATE: jsonschema.Must(`{
		"type": "object",
		"properties": {
			"server_id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1},
			"image_url": {"type": "string"}
		},
		"required": ["server_id", "name"]
	}`),
	eventpkg.SERVER_INVITE_ROTATE: jsonschema.Must(`{
		"type": "object",
		"properties": {
			"server_id": {"type": "integer", "minimum": 1}
		},
		"required": ["server_id"]
	}`),
	eventpkg.SERVER_JOIN: jsonschema.Must(`{
		"type": "object",
		"properties": {
			"server_id": {"type": "integer", "minimum": 1},
			"profile_id": {"type": "integer", "minimum": 1},
			"role": {"type": "string", "enum": ["ADMIN", "MODERATOR", "GUEST"]}
		},
		"required": ["server_id", "profile_id", "role"]
	}`),
	eventpkg.CHANNEL_CREATE: jsonschema.Must(`{
		"type": "object",
		"properties": {
			"server_id": {"type": "integer", "minimum": 1},
			"channel_id": {"type": "integer", "minimum": 1},
			"profile_id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1},
			"type": {"type": "string", "enum": ["TEXT", "AUDIO", "VIDEO"]}
		},
		"required": ["server_id", "channel_id", "profile_id", "name", "type"]
	}`),
}
