package domain

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinQuality = 0
	MaxQuality = 50

	// Seeds are limited to the 32-bit range so any simulation length stays
	// far from int wraparound.
	MinSellIn = math.MinInt32
	MaxSellIn = math.MaxInt32
)

var (
	ErrMissingName      = errors.New("item name is required")
	ErrNegativeQuality  = errors.New("item quality must not be negative")
	ErrSellInOutOfRange = errors.New("item sellIn out of range")
)

// Seed is one construction triple as supplied by an item source.
type Seed struct {
	Name    string `json:"name" yaml:"name"`
	SellIn  int    `json:"sell_in" yaml:"sell_in"`
	Quality int    `json:"quality" yaml:"quality"`
}

// Item is classified once at construction; only sellIn and quality move afterwards.
type Item struct {
	name     string
	category Category
	sellIn   int
	quality  int
}

func NewItem(name string, sellIn, quality int) (Item, error) {
	return Classifier{}.NewItem(name, sellIn, quality)
}

func (c Classifier) NewItem(name string, sellIn, quality int) (Item, error) {
	if name == "" {
		return Item{}, ErrMissingName
	}
	if quality < MinQuality {
		return Item{}, fmt.Errorf("%q has quality %d: %w", name, quality, ErrNegativeQuality)
	}
	if sellIn < MinSellIn || sellIn > MaxSellIn {
		return Item{}, fmt.Errorf("%q has sellIn %d: %w", name, sellIn, ErrSellInOutOfRange)
	}
	return Item{
		name:     name,
		category: c.Classify(name),
		sellIn:   sellIn,
		quality:  quality,
	}, nil
}

func (i Item) Name() string { return i.name }

func (i Item) Category() Category { return i.category }

func (i Item) SellIn() int { return i.sellIn }

func (i Item) Quality() int { return i.quality }

// String renders the report line "<name>, <sellIn>, <quality>".
func (i Item) String() string {
	return i.View().Line()
}

func (i Item) View() ItemView {
	return ItemView{
		Name:     i.name,
		Category: i.category.String(),
		SellIn:   i.sellIn,
		Quality:  i.quality,
	}
}

// tick advances the item by one day according to its category.
func (i *Item) tick() {
	switch i.category {
	case Ordinary:
		i.tickOrdinary(1)
	case Conjured:
		i.tickOrdinary(2)
	case AgedCheese:
		i.tickAgedCheese()
	case EventPass:
		i.tickEventPass()
	case LegendaryArtifact:
	default:
		i.tickOrdinary(1)
	}
}

// tickOrdinary decays quality by rate per day, twice that once the sell date has passed.
func (i *Item) tickOrdinary(rate int) {
	i.sellIn--
	i.degrade(rate)
	if i.sellIn < 0 {
		i.degrade(rate)
	}
}

func (i *Item) tickAgedCheese() {
	i.sellIn--
	if i.quality >= MaxQuality {
		return
	}
	i.quality++
	if i.sellIn < 0 && i.quality < MaxQuality {
		i.quality++
	}
}

func (i *Item) tickEventPass() {
	i.sellIn--
	if i.sellIn < 0 {
		i.quality = MinQuality
		return
	}
	if i.quality < MaxQuality {
		i.quality++
	}
	if i.sellIn < 10 && i.quality < MaxQuality {
		i.quality++
	}
	if i.sellIn < 5 && i.quality < MaxQuality {
		i.quality++
	}
}

// degrade lowers quality one unit at a time, never below MinQuality.
func (i *Item) degrade(units int) {
	for n := 0; n < units; n++ {
		if i.quality > MinQuality {
			i.quality--
		}
	}
}
