package articles

import "github.com/forinda/contentapi/schema"

const slugMessage = "Slug must be lowercase letters, numbers, and hyphens only"

// Request schemas, built once at load and reused by every request.
var (
	createSchema = schema.New(map[string]schema.Field{
		"title": schema.String().Min(5).Max(200).Trim().Required(),
		"slug": schema.String().
			Pattern(`^[a-z0-9-]+$`, slugMessage).
			Min(5).
			Max(200).
			Required(),
		"content":     schema.String().Min(50).Required(),
		"excerpt":     schema.String().Max(500).Trim().Optional(),
		"category_id": schema.String().Required(),
		"published":   schema.Boolean().Default(false),
		"tags":        schema.Array(schema.String().Min(2).Max(50)).Max(10).Optional(),
	})

	updateSchema = schema.New(map[string]schema.Field{
		"title": schema.String().Min(5).Max(200).Trim().Optional(),
		"slug": schema.String().
			Pattern(`^[a-z0-9-]+$`, slugMessage).
			Min(5).
			Max(200).
			Optional(),
		"content":     schema.String().Min(50).Optional(),
		"excerpt":     schema.String().Max(500).Trim().Optional(),
		"category_id": schema.String().Optional(),
		"published":   schema.Boolean().Optional(),
		"tags":        schema.Array(schema.String().Min(2).Max(50)).Max(10).Optional(),
	})
)
