package categories

import "github.com/forinda/contentapi/schema"

const slugMessage = "Slug must be lowercase letters, numbers, and hyphens only"

var createSchema = schema.New(map[string]schema.Field{
	"name": schema.String().Min(2).Max(100).Trim().Required(),
	"slug": schema.String().
		Pattern(`^[a-z0-9-]+$`, slugMessage).
		Min(2).
		Max(100).
		Required(),
	"description": schema.String().Max(500).Trim().Optional(),
})

var updateSchema = schema.New(map[string]schema.Field{
	"name": schema.String().Min(2).Max(100).Trim().Optional(),
	"slug": schema.String().
		Pattern(`^[a-z0-9-]+$`, slugMessage).
		Min(2).
		Max(100).
		Optional(),
	"description": schema.String().Max(500).Trim().Optional(),
})
