package object

import (
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/physics"
	"github.com/tomz197/inverters/internal/spawn"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Field is the logical playfield. The origin is the top-left corner and y grows downwards.
type Field struct {
	Width  float64
	Height float64
}

// Bounds returns the playfield as a rectangle.
func (f Field) Bounds() physics.Rect {
	return physics.Rect{W: f.Width, H: f.Height}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input Input
	Field Field
	Rand  spawn.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // Scaled half-block canvas
	Writer *draw.ChunkWriter // Text overlay (labels, HUD)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Collider is implemented by objects taking part in collision checks.
type Collider interface {
	Bounds() physics.Rect
}

// UpdateAll updates every object and compacts the slice in place, dropping the ones
// that asked to be removed. removed receives each dropped object, in order.
func UpdateAll[T Object](ctx UpdateContext, objs []T, removed func(T)) ([]T, error) {
	kept := objs[:0]
	for _, obj := range objs {
		remove, err := obj.Update(ctx)
		if err != nil {
			return objs, err
		}
		if remove {
			if removed != nil {
				removed(obj)
			}
			continue
		}
		kept = append(kept, obj)
	}
	clear(objs[len(kept):])
	return kept, nil
}

// DrawAll draws every object, stopping at the first error.
func DrawAll[T Object](ctx DrawContext, objs []T) error {
	for _, obj := range objs {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShouldRenderBlink returns true if an object with remaining protection time should be
// rendered this frame (for blinking effect). Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
