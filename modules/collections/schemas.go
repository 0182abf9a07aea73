package collections

import "github.com/forinda/contentapi/schema"

var createSchema = schema.New(map[string]schema.Field{
	"name":        schema.String().Min(2).Max(100).Trim().Required(),
	"description": schema.String().Max(500).Trim().Optional(),
	"is_public":   schema.Boolean().Default(false),
})

var updateSchema = schema.New(map[string]schema.Field{
	"name":        schema.String().Min(2).Max(100).Trim().Optional(),
	"description": schema.String().Max(500).Trim().Optional(),
	"is_public":   schema.Boolean().Optional(),
})

var addArticleSchema = schema.New(map[string]schema.Field{
	"article_id": schema.String().Required(),
})
