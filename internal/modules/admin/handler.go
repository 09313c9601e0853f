// Package admin exposes the metadata-driven admin API: model discovery,
// generated forms, validation rules, migrations and entry CRUD.
package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kokiddp/elkcms/internal/form"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/middleware"
	"github.com/kokiddp/elkcms/internal/migration"
	"github.com/kokiddp/elkcms/internal/models"
	"github.com/kokiddp/elkcms/internal/modules/content"
	"github.com/kokiddp/elkcms/internal/modules/translation"
	"github.com/kokiddp/elkcms/internal/pkg/pagination"
	"github.com/kokiddp/elkcms/internal/pkg/response"
	"github.com/kokiddp/elkcms/internal/scanner"
	"go.uber.org/zap"
)

// Handler wires the metadata core to the admin routes.
type Handler struct {
	registry      *meta.Registry
	sc            *scanner.Scanner
	forms         *form.Builder
	repo          *content.Repository
	trans         *translation.Service
	gen           *migration.Generator
	migrationsDir string
	log           *zap.Logger
}

// NewHandler builds the admin handler.
func NewHandler(
	registry *meta.Registry,
	sc *scanner.Scanner,
	forms *form.Builder,
	repo *content.Repository,
	trans *translation.Service,
	gen *migration.Generator,
	migrationsDir string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		registry:      registry,
		sc:            sc,
		forms:         forms,
		repo:          repo,
		trans:         trans,
		gen:           gen,
		migrationsDir: migrationsDir,
		log:           logger,
	}
}

// RegisterRoutes mounts the admin API under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/models")
	g.GET("", h.listModels)
	g.GET("/:name", h.modelDefinition)
	g.GET("/:name/form", h.modelForm)
	g.GET("/:name/rules", h.modelRules)
	g.POST("/:name/migration", h.generateMigration)
	g.POST("/:name/relations/:relation/migration", h.generatePivotMigration)
	g.GET("/:name/entries", h.listEntries)
	g.POST("/:name/entries", h.createEntry)
	g.GET("/:name/slug/:slug", h.resolveSlug)

	e := rg.Group("/entries")
	e.GET("/:id", h.getEntry)
	e.PUT("/:id", h.updateEntry)
	e.DELETE("/:id", h.deleteEntry)
	e.PUT("/:id/translations", h.setTranslation)
	e.GET("/:id/translations", h.getTranslations)

	rg.POST("/cache/clear", h.clearCache)
}

// GET /models
func (h *Handler) listModels(c *gin.Context) {
	type item struct {
		Name    string         `json:"name"`
		Options map[string]any `json:"options"`
	}
	var out []item
	for _, model := range h.registry.All() {
		opts, _ := meta.ModelOptions(model)
		out = append(out, item{Name: meta.ShortName(model), Options: meta.ToMap(opts)})
	}
	response.OK(c, out)
}

// GET /models/:name
func (h *Handler) modelDefinition(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	def, err := h.sc.Scan(c.Request.Context(), model, true)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, def)
}

// GET /models/:name/form?entry=<id>
func (h *Handler) modelForm(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}

	var existing map[string]any
	opts := form.Options{Locales: []string{middleware.Locale(c)}}
	if id := c.Query("entry"); id != "" {
		entry, err := h.repo.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, content.ErrEntryNotFound) {
				response.NotFound(c)
			} else {
				response.InternalError(c, err)
			}
			return
		}
		existing = entry.Data
		opts.Translations, err = h.trans.ForEntry(c.Request.Context(), model, id)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		opts.Locales = h.trans.Locales()
	}

	markup, err := h.forms.BuildForm(c.Request.Context(), model, existing, opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	tabs, err := h.forms.BuildTranslationTabs(c.Request.Context(), model, opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"form": markup, "translation_tabs": tabs})
}

// GET /models/:name/rules
func (h *Handler) modelRules(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	rules, err := h.forms.BuildValidationRules(c.Request.Context(), model)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rules)
}

// POST /models/:name/migration
func (h *Handler) generateMigration(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	path, err := h.gen.Generate(model, h.migrationsDir)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"path": path})
}

// POST /models/:name/relations/:relation/migration
func (h *Handler) generatePivotMigration(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	path, err := h.gen.GeneratePivot(model, c.Param("relation"), h.migrationsDir)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if path == "" {
		response.NotFoundMsg(c, "relation does not exist or needs no pivot table")
		return
	}
	response.Created(c, gin.H{"path": path})
}

// GET /models/:name/entries
func (h *Handler) listEntries(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	q := pagination.FromContext(c)
	var entries []models.EntryModel
	page, err := pagination.Paginate(h.repo.Query(c.Request.Context(), meta.ShortName(model)), q, &entries)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, entries, page)
}

// POST /models/:name/entries
func (h *Handler) createEntry(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}

	var body struct {
		Data   map[string]any `json:"data" binding:"required"`
		Slug   string         `json:"slug"`
		Status string         `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry := &models.EntryModel{Slug: body.Slug, Status: body.Status, Data: body.Data}
	if err := h.repo.Save(c.Request.Context(), model, entry); err != nil {
		h.saveError(c, err)
		return
	}
	response.Created(c, entry)
}

// GET /entries/:id
func (h *Handler) getEntry(c *gin.Context) {
	entry, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			response.NotFound(c)
		} else {
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, entry)
}

// PUT /entries/:id
func (h *Handler) updateEntry(c *gin.Context) {
	entry, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			response.NotFound(c)
		} else {
			response.InternalError(c, err)
		}
		return
	}
	model, err := h.registry.Lookup(entry.ModelType)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var body struct {
		Data   map[string]any `json:"data"`
		Slug   *string        `json:"slug"`
		Status *string        `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if body.Data != nil {
		entry.Data = body.Data
	}
	if body.Slug != nil {
		entry.Slug = *body.Slug
	}
	if body.Status != nil {
		entry.Status = *body.Status
	}

	if err := h.repo.Save(c.Request.Context(), model, entry); err != nil {
		h.saveError(c, err)
		return
	}
	response.OK(c, entry)
}

// DELETE /entries/:id
func (h *Handler) deleteEntry(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			response.NotFound(c)
		} else {
			response.InternalError(c, err)
		}
		return
	}
	response.NoContent(c)
}

// PUT /entries/:id/translations
func (h *Handler) setTranslation(c *gin.Context) {
	entry, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			response.NotFound(c)
		} else {
			response.InternalError(c, err)
		}
		return
	}
	model, err := h.registry.Lookup(entry.ModelType)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var body struct {
		Locale string `json:"locale" binding:"required"`
		Field  string `json:"field"  binding:"required"`
		Value  string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err = h.trans.Set(c.Request.Context(), model, entry.ID, body.Field, body.Locale, body.Value)
	switch {
	case errors.Is(err, translation.ErrNotTranslatable),
		errors.Is(err, translation.ErrUnknownField),
		errors.Is(err, translation.ErrUnknownLocale):
		response.UnprocessableEntity(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
	}
}

// GET /entries/:id/translations
func (h *Handler) getTranslations(c *gin.Context) {
	entry, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			response.NotFound(c)
		} else {
			response.InternalError(c, err)
		}
		return
	}
	model, err := h.registry.Lookup(entry.ModelType)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out, err := h.trans.ForEntry(c.Request.Context(), model, entry.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}

// GET /models/:name/slug/:slug
func (h *Handler) resolveSlug(c *gin.Context) {
	model, ok := h.lookup(c)
	if !ok {
		return
	}
	entry, err := h.repo.ResolveSlug(c.Request.Context(), meta.ShortName(model), c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if entry == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, entry)
}

// POST /cache/clear?model=<name>
func (h *Handler) clearCache(c *gin.Context) {
	if name := c.Query("model"); name != "" {
		model, err := h.registry.Lookup(name)
		if err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		if err := h.sc.ClearCache(c.Request.Context(), model); err != nil {
			response.InternalError(c, err)
			return
		}
		response.NoContent(c)
		return
	}
	if err := h.sc.ClearAll(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) lookup(c *gin.Context) (any, bool) {
	model, err := h.registry.Lookup(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, err.Error())
		return nil, false
	}
	return model, true
}

func (h *Handler) saveError(c *gin.Context, err error) {
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"ok": 0, "code": http.StatusUnprocessableEntity,
			"message": verr.Error(), "errors": verr.Fields,
		})
		return
	}
	response.InternalError(c, err)
}
