package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/assistant"
	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *usecase.ItemUseCase
	CategoryUC *usecase.CategoryUseCase
	TeamUC     *usecase.TeamUseCase
	Assistant  *assistant.Service
	DraftsPDF  ports.DraftsPDFRenderer
	Profiles   repository.ProfileRepository
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; RequireRole replica
// la autorización que vuelven a aplicar los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.Profiles))

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", RequireRole(entity.ReadRoles...), itemHandler.List)
	items.Post("/", RequireRole(entity.ItemWriteRoles...), itemHandler.Create)
	items.Get("/:id", RequireRole(entity.ReadRoles...), itemHandler.GetByID)
	items.Patch("/:id", RequireRole(entity.ItemWriteRoles...), itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.ItemWriteRoles...), itemHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", RequireRole(entity.ReadRoles...), categoryHandler.List)
	categories.Post("/", RequireRole(entity.CategoryAdminRoles...), categoryHandler.Create)
	categories.Patch("/:id", RequireRole(entity.CategoryAdminRoles...), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.CategoryAdminRoles...), categoryHandler.Delete)

	// AI
	ai := api.Group("/ai")
	aiHandler := NewAIHandler(deps.Assistant, deps.DraftsPDF)
	ai.Post("/nl-search", RequireRole(entity.AssistantRoles...), aiHandler.NLSearch)
	ai.Post("/chat-data", RequireRole(entity.AssistantRoles...), aiHandler.ChatData)
	ai.Post("/restock", RequireRole(entity.PlanningRoles...), aiHandler.Restock)
	ai.Post("/supplier-drafts", RequireRole(entity.PlanningRoles...), aiHandler.SupplierDrafts)
	ai.Post("/supplier-drafts/pdf", RequireRole(entity.PlanningRoles...), aiHandler.SupplierDraftsPDF)

	// Admin
	admin := api.Group("/admin", RequireRole(entity.TeamAdminRoles...))
	teamHandler := NewTeamHandler(deps.TeamUC)
	admin.Get("/roles", teamHandler.ListRoles)
	admin.Patch("/roles", teamHandler.UpdateRole)
	admin.Post("/invite", teamHandler.Invite)
}
