package ecs

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/cxform"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Sprite places a region of a page image on the target.
type Sprite struct {
	Page   *ebiten.Image
	Region cxform.TextureRegion
	GeoM   ebiten.GeoM
	// Z orders sprites within a DrawSystem pass; lower values draw first.
	Z int
	// Hidden sprites are skipped.
	Hidden bool
}

// Transform is the color transform applied to an entity's sprite.
type Transform struct {
	cxform.ColorTransform
}

var (
	// SpriteComponent stores a Sprite on an entity.
	SpriteComponent = donburi.NewComponentType[Sprite]()
	// TransformComponent stores a Transform on an entity. Entities without
	// one are not drawn by DrawSystem.
	TransformComponent = donburi.NewComponentType[Transform]()
)

// DrawSystem draws every entity that has both a SpriteComponent and a
// TransformComponent.
type DrawSystem struct {
	query   *donburi.Query
	batch   *cxform.SpriteBatch
	entries []drawEntry
}

type drawEntry struct {
	sprite *Sprite
	xf     cxform.ColorTransform
}

// NewDrawSystem creates a DrawSystem with its own sprite batch.
func NewDrawSystem() *DrawSystem {
	return &DrawSystem{
		query: donburi.NewQuery(filter.Contains(SpriteComponent, TransformComponent)),
		batch: cxform.NewSpriteBatch(),
	}
}

// Draw submits all matching entities to target, ordered by Sprite.Z. Entities
// with equal Z keep query order.
func (s *DrawSystem) Draw(world donburi.World, target *ebiten.Image) {
	s.entries = s.entries[:0]
	s.query.Each(world, func(entry *donburi.Entry) {
		sp := SpriteComponent.Get(entry)
		if sp.Hidden || sp.Page == nil {
			return
		}
		s.entries = append(s.entries, drawEntry{
			sprite: sp,
			xf:     TransformComponent.Get(entry).ColorTransform,
		})
	})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].sprite.Z < s.entries[j].sprite.Z
	})

	s.batch.Begin(target)
	for i := range s.entries {
		e := &s.entries[i]
		s.batch.Draw(e.sprite.Page, e.sprite.Region, e.sprite.GeoM, e.xf)
	}
	s.batch.End()
}

// DrawCalls reports the number of draw calls issued by the last Draw.
func (s *DrawSystem) DrawCalls() int {
	return s.batch.DrawCalls()
}

// Count reports the number of sprites submitted by the last Draw.
func (s *DrawSystem) Count() int {
	return len(s.entries)
}
