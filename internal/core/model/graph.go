package model

// RelationType is the kind of correspondence link between two entities.
type RelationType string

const (
	RelationHourRuledBy RelationType = "HOUR_RULED_BY"
	RelationDayRuledBy  RelationType = "DAY_RULED_BY"
	RelationAnalogy     RelationType = "HAS_ANALOGY_WITH"
	RelationGeneric     RelationType = "CORRESPONDS_TO"
)

// EntityClass is the closed set of correspondence entity categories.
type EntityClass string

const (
	ClassPlanet    EntityClass = "planet"
	ClassSpiritual EntityClass = "spiritual" // angels, demons, spirits
	ClassMaterial  EntityClass = "material"  // metals, colors, stones, plants
	ClassAction    EntityClass = "action"    // rituals, operations
	ClassTemporal  EntityClass = "temporal"  // weekdays, planetary hours
)

// TimeSensitive reports whether claims on this class are weakened by a
// retrograde source planet.
func (c EntityClass) TimeSensitive() bool {
	switch c {
	case ClassSpiritual, ClassAction, ClassTemporal:
		return true
	}
	return false
}

// ActionSensitive reports whether claims on this class are weakened by a
// below-horizon source planet.
func (c EntityClass) ActionSensitive() bool {
	return c == ClassAction
}

// CorrespondenceEntity is one node of the correspondence subgraph snapshot.
type CorrespondenceEntity struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Class  EntityClass `json:"class"`
	Planet Planet      `json:"planet,omitempty"` // set only for ClassPlanet
}

// Link is one raw edge of the subgraph snapshot as returned by the graph
// store. Direction is ignored for reachability.
type Link struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Relation RelationType `json:"relation"`
}

// Subgraph is the per-evaluation snapshot fetched from the graph store.
type Subgraph struct {
	Entities []CorrespondenceEntity `json:"entities"`
	Links    []Link                 `json:"links"`
}

// DominanceLayer identifies which rulership layer governs the moment.
type DominanceLayer string

const (
	LayerHour     DominanceLayer = "hour"
	LayerDay      DominanceLayer = "day"
	LayerBalanced DominanceLayer = "balanced"
)

// Tier is the three-step visual-intent classification.
type Tier string

const (
	TierProminent Tier = "prominent"
	TierSecondary Tier = "secondary"
	TierMuted     Tier = "muted"
)

// Claim is one weighted assertion that a source planet influences a target
// entity through a correspondence link. Claims are grouped by target during
// conflict resolution; exactly one claim per contested target ends up
// primary.
type Claim struct {
	Source   Planet               `json:"source_planet"`
	Relation RelationType         `json:"relation_type"`
	Target   CorrespondenceEntity `json:"target_entity"`
	From     string               `json:"from"` // link endpoint nearer the ruler
	Hop      int                  `json:"hop_distance"`
	Layer    DominanceLayer       `json:"layer"` // hour or day rooted
	Muted    bool                 `json:"muted,omitempty"`

	Weight             float64 `json:"weight"`
	Confidence         float64 `json:"confidence"`
	IsPrimaryInfluence bool    `json:"is_primary_influence"`
	StrengthRank       int     `json:"strength_rank"`
}

// WeightedNode is the annotated projection of one subgraph entity.
type WeightedNode struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Weight  float64        `json:"weight"`
	Tier    Tier           `json:"tier"`
	Size    float64        `json:"size"`
	Opacity float64        `json:"opacity"`
	Layer   DominanceLayer `json:"layer"`
}

// WeightedEdge is the annotated projection of one correspondence link.
type WeightedEdge struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Weight  float64 `json:"weight"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// ElementBalance is the weight histogram over the four classical elements.
type ElementBalance struct {
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
	Water float64 `json:"water"`
}

// Add accumulates weight into the bucket for an element.
func (b *ElementBalance) Add(e Element, w float64) {
	switch e {
	case Fire:
		b.Fire += w
	case Earth:
		b.Earth += w
	case Air:
		b.Air += w
	case Water:
		b.Water += w
	}
}

// Metadata summarizes one evaluation for the rendering layer.
type Metadata struct {
	Dominant     DominanceLayer `json:"dominant"`
	HourStrength float64        `json:"hour_strength"`
	DayStrength  float64        `json:"day_strength"`
	Elements     ElementBalance `json:"elements"`
}

// GraphDocument is the assembled weighted graph returned to the caller.
// It is a pure projection: computed fresh per evaluation, never persisted.
type GraphDocument struct {
	EvaluationID string         `json:"evaluation_id"`
	Nodes        []WeightedNode `json:"nodes"`
	Edges        []WeightedEdge `json:"edges"`
	Claims       []Claim        `json:"claims"`
	Metadata     Metadata       `json:"metadata"`
}
