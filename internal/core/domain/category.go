package domain

type Category int

const (
	Ordinary Category = iota
	AgedCheese
	EventPass
	LegendaryArtifact
	Conjured
)

const (
	AgedCheeseName        = "Aged Brie"
	EventPassName         = "Backstage passes to a TAFKAL80ETC concert"
	LegendaryArtifactName = "Sulfuras, Hand of Ragnaros"
	ConjuredName          = "Conjured Mana Cake"
)

func (c Category) String() string {
	switch c {
	case Ordinary:
		return "ordinary"
	case AgedCheese:
		return "aged_cheese"
	case EventPass:
		return "event_pass"
	case LegendaryArtifact:
		return "legendary_artifact"
	case Conjured:
		return "conjured"
	}
	return "unknown"
}

// Classifier maps item names to categories. The zero value knows only the
// three special names; Conjured must be switched on explicitly.
type Classifier struct {
	Conjured bool
}

// Classify matches name exactly (case-sensitive, untrimmed). Anything else is Ordinary.
func (c Classifier) Classify(name string) Category {
	switch name {
	case AgedCheeseName:
		return AgedCheese
	case EventPassName:
		return EventPass
	case LegendaryArtifactName:
		return LegendaryArtifact
	case ConjuredName:
		if c.Conjured {
			return Conjured
		}
	}
	return Ordinary
}

func Classify(name string) Category {
	return Classifier{}.Classify(name)
}
