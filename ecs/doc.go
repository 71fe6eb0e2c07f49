// Package ecs provides ECS adapters for cxform.
//
// The adapter targets [Donburi]: entities carrying both a [SpriteComponent]
// and a [TransformComponent] are drawn by a [DrawSystem], which submits them
// through a [cxform.SpriteBatch] so each sprite is shaded with its own
// color transform.
//
// Usage:
//
//	world := donburi.NewWorld()
//	e := world.Create(ecs.SpriteComponent, ecs.TransformComponent)
//	entry := world.Entry(e)
//	ecs.SpriteComponent.SetValue(entry, ecs.Sprite{Page: img})
//	ecs.TransformComponent.SetValue(entry, ecs.Transform{ColorTransform: cxform.NewAlphaTransform(0.5)})
//
//	sys := ecs.NewDrawSystem()
//	sys.Draw(world, screen)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
