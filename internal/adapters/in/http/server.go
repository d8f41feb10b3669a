package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"sortable/internal/core/application/usecases/commands"
	"sortable/internal/core/application/usecases/queries"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	ItemCreator interface {
		Handle(ctx context.Context, cmd commands.CreateItemCommand) (int, error)
	}

	ItemDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteItemCommand) (int, error)
	}

	ItemReorderer interface {
		Handle(ctx context.Context, cmd commands.ReorderItemsCommand) error
	}

	ItemLister interface {
		Handle(ctx context.Context, query queries.ListItemsQuery) ([]queries.ListItemsQueryResponse, error)
	}

	ItemNavigator interface {
		Handle(ctx context.Context, query queries.GetItemNavigationQuery) (queries.GetItemNavigationQueryResponse, error)
	}
)

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Item struct {
	ID         string `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
}

type NewItem struct {
	ID         string `json:"id,omitempty"`
	CategoryID int64  `json:"categoryId"`
	Title      string `json:"title"`
}

type CreatedItem struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type Navigation struct {
	ID              string  `json:"id"`
	Position        int     `json:"position"`
	ReversePosition int     `json:"reversePosition"`
	IsFirst         bool    `json:"isFirst"`
	IsLast          bool    `json:"isLast"`
	Prev            *string `json:"prev,omitempty"`
	Next            *string `json:"next,omitempty"`
}

// Server maps HTTP requests onto item commands and queries.
type Server struct {
	// Command handlers
	createItemHandler   ItemCreator
	deleteItemHandler   ItemDeleter
	reorderItemsHandler ItemReorderer

	// Query handlers
	listItemsHandler  ItemLister
	navigationHandler ItemNavigator

	itemsParam string
}

// NewServer creates a new HTTP server. An empty itemsParam means
// sortable.DefaultItemsParam. A nil reorderer leaves the sort
// endpoint answering 400, as for a model without ordering attached.
func NewServer(
	createItemHandler ItemCreator,
	deleteItemHandler ItemDeleter,
	reorderItemsHandler ItemReorderer,
	listItemsHandler ItemLister,
	navigationHandler ItemNavigator,
	itemsParam string,
) *Server {
	if itemsParam == "" {
		itemsParam = sortable.DefaultItemsParam
	}
	return &Server{
		createItemHandler:   createItemHandler,
		deleteItemHandler:   deleteItemHandler,
		reorderItemsHandler: reorderItemsHandler,
		listItemsHandler:    listItemsHandler,
		navigationHandler:   navigationHandler,
		itemsParam:          itemsParam,
	}
}

// RegisterRoutes mounts the health, metrics and item routes on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/api/v1/items")
	g.GET("", s.ListItems)
	g.POST("", s.CreateItem)
	g.POST("/sort", s.SortItems)
	g.DELETE("/:id", s.DeleteItem)
	g.GET("/:id/navigation", s.GetItemNavigation)
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListItems handles GET /api/v1/items?categoryId=&sort= - lists one category in position order.
func (s *Server) ListItems(ctx echo.Context) error {
	categoryID, err := strconv.ParseInt(ctx.QueryParam("categoryId"), 10, 64)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid categoryId")
	}
	dir, err := sortable.ParseDirection(ctx.QueryParam("sort"), sortable.Ascending)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid sort direction")
	}

	query, err := queries.NewListItemsQuery(categoryID, dir)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	items, err := s.listItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve items")
	}

	response := make([]Item, len(items))
	for i, it := range items {
		response[i] = Item{
			ID:         it.ID.String(),
			CategoryID: it.CategoryID,
			Title:      it.Title,
			Position:   it.Position,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateItem handles POST /api/v1/items - appends an item to its category.
func (s *Server) CreateItem(ctx echo.Context) error {
	var newItem NewItem
	if err := ctx.Bind(&newItem); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id := kernel.NewUUID()
	if newItem.ID != "" {
		parsed, err := kernel.UUIDFromString(newItem.ID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid item id")
		}
		id = parsed
	}

	cmd, err := commands.NewCreateItemCommand(id, newItem.CategoryID, newItem.Title)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item data: "+err.Error())
	}

	position, err := s.createItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, statusOf(err), "Failed to create item")
	}

	return ctx.JSON(http.StatusCreated, CreatedItem{ID: id.String(), Position: position})
}

// DeleteItem handles DELETE /api/v1/items/:id - removes an item and closes the gap.
func (s *Server) DeleteItem(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item id")
	}

	cmd, err := commands.NewDeleteItemCommand(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item id: "+err.Error())
	}

	if _, err = s.deleteItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusOf(err), "Failed to delete item")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SortItems handles POST /api/v1/items/sort?sort=desc - applies a submitted order.
// The IDs come from the items param as a form array or a JSON array.
func (s *Server) SortItems(ctx echo.Context) error {
	if s.reorderItemsHandler == nil {
		err := errs.NewPreconditionError("sort items", "ordering is not attached to items")
		return errorJSON(ctx, statusOf(err), err.Error())
	}

	dir, err := sortable.ParseDirection(ctx.QueryParam("sort"), sortable.Descending)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid sort direction")
	}

	raw, err := s.submittedIDs(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, parseErr := kernel.UUIDFromString(value)
		if parseErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid item id: "+value)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewReorderItemsCommand(ids, dir)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order: "+err.Error())
	}

	if err = s.reorderItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusOf(err), "Failed to sort items")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetItemNavigation handles GET /api/v1/items/:id/navigation?sort= - rank and neighbours.
func (s *Server) GetItemNavigation(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item id")
	}
	dir, err := sortable.ParseDirection(ctx.QueryParam("sort"), sortable.Ascending)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid sort direction")
	}

	query, err := queries.NewGetItemNavigationQuery(id, dir)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	nav, err := s.navigationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusOf(err), "Failed to read navigation")
	}

	return ctx.JSON(http.StatusOK, Navigation{
		ID:              nav.ID.String(),
		Position:        nav.Position,
		ReversePosition: nav.ReversePosition,
		IsFirst:         nav.IsFirst,
		IsLast:          nav.IsLast,
		Prev:            idString(nav.Prev),
		Next:            idString(nav.Next),
	})
}

// submittedIDs reads the items param from a JSON object, or from form
// values named either "sortItems" or "sortItems[]".
func (s *Server) submittedIDs(ctx echo.Context) ([]string, error) {
	req := ctx.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var body map[string][]string
		if err := ctx.Bind(&body); err != nil {
			return nil, err
		}
		return body[s.itemsParam], nil
	}

	form, err := ctx.FormParams()
	if err != nil {
		return nil, err
	}
	if values := form[s.itemsParam+"[]"]; len(values) > 0 {
		return values, nil
	}
	return form[s.itemsParam], nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPrecondition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
