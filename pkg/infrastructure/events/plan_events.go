package events

import (
	"time"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// SupplyPlanBuiltEvent is published once per computed plan
const SupplyPlanBuiltEvent = "supply_plan.built"

// SupplyPlanBuilt is emitted after a supply plan has been computed
type SupplyPlanBuilt struct {
	PlanID          string                    `json:"planId"`
	Mode            string                    `json:"mode"`
	WeekStart       entities.Date             `json:"weekStart"`
	DishID          entities.DishID           `json:"dishId,omitempty"`
	Lines           []entities.SupplyPlanLine `json:"lines"`
	NeedingPurchase int                       `json:"needingPurchase"`
	TotalDemand     float64                   `json:"totalDemand"`
	At              time.Time                 `json:"at"`
}

// NewSupplyPlanBuilt wraps the payload in an event on the plan's stream
func NewSupplyPlanBuilt(payload SupplyPlanBuilt) Event {
	return BaseEvent{
		EventType:    SupplyPlanBuiltEvent,
		Stream:       "plan-" + payload.PlanID,
		EventData:    payload,
		EventTime:    payload.At,
		EventVersion: 1,
	}
}
