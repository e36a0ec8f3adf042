package api

import (
	"net/http"
	"strings"

	"vereteno/internal/convert"
	"vereteno/internal/ddl"
	"vereteno/internal/names"
	"vereteno/internal/psl"

	"github.com/gin-gonic/gin"
)

// Service — зависимости хендлеров
type Service struct {
	Conv  *convert.Converter
	Names *names.Service
}

type schemaReq struct {
	Schema string `json:"schema"`
}

// bindSchema читает {"schema": "..."} и отбрасывает пустые тела
func bindSchema(c *gin.Context) (string, bool) {
	var req schemaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return "", false
	}
	if strings.TrimSpace(req.Schema) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty schema"})
		return "", false
	}
	return req.Schema, true
}

// POST /api/convert
func ConvertHandler(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, ok := bindSchema(c)
		if !ok {
			return
		}
		entities, issues, err := s.Conv.Convert(text)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"entities": entities,
			"issues":   issues,
		})
	}
}

// POST /api/validate
func ValidateHandler(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, ok := bindSchema(c)
		if !ok {
			return
		}
		issues, err := s.Conv.Validate(text)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if issues == nil {
			issues = []convert.SchemaIssue{}
		}
		c.JSON(http.StatusOK, gin.H{"issues": issues})
	}
}

// POST /api/normalize — предпросмотр автоисправлений имён
func NormalizeHandler(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, ok := bindSchema(c)
		if !ok {
			return
		}
		out, err := s.Conv.NormalizeText(text)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"schema": out})
	}
}

// POST /api/ddl — DDL по сконвертированным сущностям
func DDLHandler(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, ok := bindSchema(c)
		if !ok {
			return
		}
		entities, _, err := s.Conv.Convert(text)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		stmts, err := ddl.GenerateDDL(entities, s.Names)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ddl": stmts})
	}
}

type metaField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	Array    bool   `json:"array,omitempty"`
}

type metaModel struct {
	Name   string      `json:"name"`
	Fields []metaField `json:"fields"`
}

type metaEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// POST /api/meta — краткая сводка по распарсенной схеме
func MetaHandler(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, ok := bindSchema(c)
		if !ok {
			return
		}
		schema, err := psl.Parse(text)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		models := make([]metaModel, 0, len(schema.Models))
		for _, m := range schema.Models {
			mm := metaModel{Name: m.Name, Fields: make([]metaField, 0, len(m.Fields))}
			for _, f := range m.Fields {
				mm.Fields = append(mm.Fields, metaField{
					Name: f.Name, Type: f.Type, Optional: f.Optional, Array: f.Array,
				})
			}
			models = append(models, mm)
		}
		enums := make([]metaEnum, 0, len(schema.Enums))
		for _, e := range schema.Enums {
			enums = append(enums, metaEnum{Name: e.Name, Values: e.Values})
		}
		c.JSON(http.StatusOK, gin.H{"models": models, "enums": enums})
	}
}
