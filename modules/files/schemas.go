package files

import "github.com/forinda/contentapi/schema"

var uploadSchema = schema.New(map[string]schema.Field{
	"description": schema.String().Max(500).Optional(),
	"tags":        schema.Array(schema.String()).Max(10).Optional(),
})
