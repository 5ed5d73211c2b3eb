package app

import (
	"github.com/klokku/planner/internal/config"
	"github.com/klokku/planner/internal/event_bus"
	"github.com/klokku/planner/internal/storage"
	"github.com/klokku/planner/internal/utils"
	"github.com/klokku/planner/pkg/action"
	"github.com/klokku/planner/pkg/calendar"
	"github.com/klokku/planner/pkg/calendar_view"
	"github.com/klokku/planner/pkg/editor"
	"github.com/klokku/planner/pkg/event_type"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	EventTypeRepository *event_type.RepositoryImpl
	EventTypeRegistry   *event_type.Registry
	EventTypeHandler    *event_type.Handler

	CalendarRepository *calendar.RepositoryImpl
	CalendarStore      *calendar.Store
	CalendarHandler    *calendar.Handler

	Interceptor *action.Interceptor
	RenderQueue *editor.RenderQueue
	Augmenter   *editor.Augmenter

	View        *calendar_view.View
	ViewHandler *calendar_view.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(kv storage.KeyValue, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.EventTypeRepository = event_type.NewRepository(kv)
	deps.EventTypeRegistry = event_type.NewRegistry(deps.EventTypeRepository)
	deps.EventTypeHandler = event_type.NewHandler(deps.EventTypeRegistry)

	deps.CalendarRepository = calendar.NewRepository(kv)
	deps.CalendarStore = calendar.NewStore(deps.CalendarRepository, deps.EventTypeRegistry)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarStore, deps.Clock)

	deps.Interceptor = action.NewInterceptor(deps.CalendarStore)
	deps.RenderQueue = editor.NewRenderQueue()
	deps.Augmenter = editor.NewAugmenter(deps.EventTypeRegistry, deps.RenderQueue)

	deps.View = calendar_view.NewView(
		deps.EventBus,
		deps.EventTypeRegistry,
		deps.CalendarStore,
		deps.Interceptor,
		deps.Augmenter,
		deps.RenderQueue,
	)
	deps.ViewHandler = calendar_view.NewHandler(deps.View)

	return deps
}
