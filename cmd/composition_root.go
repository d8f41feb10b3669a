package cmd

import (
	"fmt"
	"log/slog"

	httpin "sortable/internal/adapters/in/http"
	"sortable/internal/adapters/out/postgres"
	"sortable/internal/adapters/out/postgres/itemrepo"
	"sortable/internal/adapters/out/postgres/sortablerepo"
	"sortable/internal/core/application/ordering"
	"sortable/internal/core/application/usecases/commands"
	"sortable/internal/core/application/usecases/queries"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	sortConfig sortable.Config
	engine     *ordering.Engine
	uowFactory *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot checks the ordering config against the items table and
// builds the engine. The schema must already be migrated.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	requested, err := config.Sortable()
	if err != nil {
		return CompositionRoot{}, err
	}
	sortConfig, err := sortablerepo.ResolveConfig(gormDB, itemrepo.TableName, requested)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("resolve sortable config: %w", err)
	}

	engine, err := ordering.NewEngine(sortConfig, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create ordering engine: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		sortConfig: sortConfig,
		engine:     engine,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, sortConfig),
	}, nil
}

func (c *CompositionRoot) CreateCreateItemCommandHandler() commands.CreateItemCommandHandler {
	return commands.NewCreateItemCommandHandler(c.itemUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateDeleteItemCommandHandler() commands.DeleteItemCommandHandler {
	return commands.NewDeleteItemCommandHandler(c.itemUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateReorderItemsCommandHandler() commands.ReorderItemsCommandHandler {
	return commands.NewReorderItemsCommandHandler(c.orderingUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateRepackItemsCommandHandler() commands.RepackItemsCommandHandler {
	return commands.NewRepackItemsCommandHandler(c.orderingUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateListItemsQueryHandler() queries.ListItemsQueryHandler {
	return queries.NewListItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetItemNavigationQueryHandler() queries.GetItemNavigationQueryHandler {
	return queries.NewGetItemNavigationQueryHandler(c.uowFactory, c.engine)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	createItem := c.CreateCreateItemCommandHandler()
	deleteItem := c.CreateDeleteItemCommandHandler()
	reorderItems := c.CreateReorderItemsCommandHandler()

	return httpin.NewServer(
		&createItem,
		&deleteItem,
		&reorderItems,
		c.CreateListItemsQueryHandler(),
		c.CreateGetItemNavigationQueryHandler(),
		c.sortConfig.ItemsParam,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	repack := c.CreateRepackItemsCommandHandler()
	return jobs.NewJobManager(&repack, c.config.GapRepairSchedule, c.logger)
}

func (c *CompositionRoot) itemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderingUoWFactory() commands.OrderingUoWFactory {
	return FuncOrderingUoWFactory(func() commands.OrderingUoW {
		return c.uowFactory.Create()
	})
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncOrderingUoWFactory func() commands.OrderingUoW

func (f FuncOrderingUoWFactory) Create() commands.OrderingUoW {
	return f()
}
