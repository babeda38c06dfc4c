package convert

import (
	"slices"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/idutil"
	"github.com/google/uuid"
)

// Action is one emission step of signal detection reconciliation.
type Action int

const (
	// EmitPrevArrival emits the arrival based hypothesis of the previous
	// stage.
	EmitPrevArrival Action = iota
	// EmitPrevAssocs emits assoc based hypotheses of the previous stage.
	EmitPrevAssocs
	// EmitCurrentArrival emits the arrival based hypothesis of the current
	// stage.
	EmitCurrentArrival
	// EmitCurrentAssocs emits assoc based hypotheses of the current stage.
	EmitCurrentAssocs
)

var actionNames = []string{
	"EMIT_PREV_ARRIVAL",
	"EMIT_PREV_ASSOCS",
	"EMIT_CURRENT_ARRIVAL",
	"EMIT_CURRENT_ASSOCS",
}

func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return "UNKNOWN"
	}
	return actionNames[a]
}

// Facts are the conditions reconciliation depends on.
type Facts struct {
	// HasPrevStage is true when the previous stage is one of the ordered
	// stages.
	HasPrevStage        bool
	HasPrevArrival      bool
	PrevArrivalSameArid bool
	// PhaseChanged compares iphase of the previous and current arrivals
	// literally.
	PhaseChanged     bool
	HasCurrentAssocs bool
}

// planRules is the reconciliation decision table. Rules are evaluated in
// order and every rule that applies adds its action.
var planRules = []struct {
	action  Action
	applies func(Facts) bool
}{
	{EmitPrevArrival, func(f Facts) bool {
		return f.HasPrevStage && f.PrevArrivalSameArid
	}},
	{EmitPrevAssocs, func(f Facts) bool {
		return f.HasPrevStage && f.PrevArrivalSameArid
	}},
	// The current arrival is redundant when the phase is unchanged and
	// current assocs already cover it.
	{EmitCurrentArrival, func(f Facts) bool {
		return !f.HasPrevStage || !f.HasPrevArrival || !f.HasCurrentAssocs || f.PhaseChanged
	}},
	{EmitCurrentAssocs, func(Facts) bool { return true }},
}

// Plan returns the ordered emission actions for the facts.
func Plan(f Facts) []Action {
	var res []Action
	for _, v := range planRules {
		if v.applies(f) {
			res = append(res, v.action)
		}
	}
	return res
}

// SignalDetectionComponents are the records of one arrival lineage
// across the previous and current stages.
type SignalDetectionComponents struct {
	CurrentStage string
	// PreviousStage is empty when there is none.
	PreviousStage   string
	CurrentArrival  *dao.ArrivalDao
	PreviousArrival *dao.ArrivalDao
	CurrentAssocs   []dao.AssocDao
	PreviousAssocs  []dao.AssocDao

	Station                coi.Station
	MonitoringOrganization string

	OrderedStages  []string
	AccountByStage map[string]string
}

// Validate checks that required components are present and that the
// current stage has an account.
func (c SignalDetectionComponents) Validate() error {
	switch {
	case c.CurrentStage == "":
		return NullArgumentError("currentStage")
	case c.CurrentArrival == nil:
		return NullArgumentError("currentArrival")
	case c.Station.Name == "":
		return NullArgumentError("station")
	case c.MonitoringOrganization == "":
		return NullArgumentError("monitoringOrganization")
	case c.AccountByStage == nil:
		return NullArgumentError("accountByStage")
	}
	if _, ok := c.AccountByStage[c.CurrentStage]; !ok {
		return UnknownStageError(c.CurrentStage)
	}
	return nil
}

// Facts derives the reconciliation facts of the components.
func (c SignalDetectionComponents) Facts() Facts {
	prev := c.PreviousArrival
	cur := c.CurrentArrival
	res := Facts{
		HasPrevStage: c.PreviousStage != "" &&
			slices.Contains(c.OrderedStages, c.PreviousStage),
		HasPrevArrival:   prev != nil,
		HasCurrentAssocs: len(c.CurrentAssocs) > 0,
	}
	if prev != nil && cur != nil {
		res.PrevArrivalSameArid = prev.Arid == cur.Arid
		res.PhaseChanged = prev.IPhase != cur.IPhase
	}
	return res
}

// Reconciler builds signal detections with hypotheses from the previous
// and current stages.
type Reconciler struct {
	hc  *HypothesisConverter
	ids idutil.IDs
}

// NewReconciler creates a Reconciler.
func NewReconciler(hc *HypothesisConverter, ids idutil.IDs) *Reconciler {
	return &Reconciler{hc: hc, ids: ids}
}

// SignalDetection reconciles the components into one signal detection.
// Hypotheses are ordered as previous stage arrival, previous stage
// assocs, current stage arrival, current stage assocs.
func (r *Reconciler) SignalDetection(
	c SignalDetectionComponents,
) (coi.SignalDetection, error) {
	if err := c.Validate(); err != nil {
		return coi.SignalDetection{}, err
	}

	arid := c.CurrentArrival.Arid
	sdID := r.ids.SignalDetectionIDFromArid(arid)
	curAccount := c.AccountByStage[c.CurrentStage]

	facts := c.Facts()
	var prevAccount string
	if facts.HasPrevStage {
		var ok bool
		if prevAccount, ok = c.AccountByStage[c.PreviousStage]; !ok {
			return coi.SignalDetection{}, UnknownStageError(c.PreviousStage)
		}
	}

	var hyps []coi.SignalDetectionHypothesis
	for _, action := range Plan(facts) {
		var res []coi.SignalDetectionHypothesis
		var err error
		switch action {
		case EmitPrevArrival:
			res, err = r.arrivalRef(prevAccount, sdID, c.PreviousArrival)
		case EmitPrevAssocs:
			res, err = r.assocRefs(prevAccount, sdID, c.PreviousArrival, c.PreviousAssocs)
		case EmitCurrentArrival:
			res, err = r.arrivalRef(curAccount, sdID, c.CurrentArrival)
		case EmitCurrentAssocs:
			res, err = r.assocRefs(curAccount, sdID, c.CurrentArrival, c.CurrentAssocs)
		}
		if err != nil {
			return coi.SignalDetection{}, err
		}
		hyps = append(hyps, res...)
	}

	return coi.NewSignalDetection(sdID, c.Station, c.MonitoringOrganization, hyps)
}

func (r *Reconciler) arrivalRef(
	account string,
	sdID uuid.UUID,
	arrival *dao.ArrivalDao,
) ([]coi.SignalDetectionHypothesis, error) {
	h, err := r.hc.EntityReference(account, sdID, arrival)
	if err != nil {
		return nil, err
	}
	return []coi.SignalDetectionHypothesis{h}, nil
}

// assocRefs emits references of assocs that belong to the arrival.
func (r *Reconciler) assocRefs(
	account string,
	sdID uuid.UUID,
	arrival *dao.ArrivalDao,
	assocs []dao.AssocDao,
) ([]coi.SignalDetectionHypothesis, error) {
	var res []coi.SignalDetectionHypothesis
	for i := range assocs {
		if assocs[i].Arid != arrival.Arid {
			continue
		}
		h, err := r.hc.EntityReferenceWithAssoc(account, sdID, arrival, &assocs[i])
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, nil
}
