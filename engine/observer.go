package engine

import "github.com/socraticlabs/copilot/observability"

// Engine event types emitted during a turn.
const (
	EventTurnStart        observability.EventType = "engine.turn.start"
	EventRouterDecide     observability.EventType = "engine.router.decide"
	EventPhaseRun         observability.EventType = "engine.phase.run"
	EventSummaryRun       observability.EventType = "engine.summary.run"
	EventGenerateFallback observability.EventType = "engine.generate.fallback"
	EventStoreSave        observability.EventType = "engine.store.save"
	EventTurnError        observability.EventType = "engine.turn.error"
)
