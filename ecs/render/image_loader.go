package render

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/assets"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

// Preload uploads every texture the tables reference: wall and door
// textures, object sprites, enemy sheets and weapon HUD sprites. Missing
// PNGs fall back to generated placeholders.
func (r *Registry) Preload(tables *prefabs.Tables, texW, texH int) {
	if r == nil || tables == nil {
		return
	}
	for _, d := range tables.Tiles {
		if d.Texture == "" || r.Get(d.Texture) != nil {
			continue
		}
		switch d.Category {
		case component.CategoryWall, component.CategoryThinWall:
			r.RegisterImage(d.Texture, assets.Texture(d.Texture, assets.KindWall, texW, texH))
		case component.CategoryDoor:
			r.RegisterImage(d.Texture, assets.Texture(d.Texture, assets.KindDoor, texW, texH))
		case component.CategoryObject:
			r.RegisterImage(d.Texture, assets.Texture(d.Texture, assets.KindSprite, texW, texH))
		}
	}
	for key, arch := range tables.Archetypes {
		r.RegisterImage(key, assets.Sheet(key, arch.Sprite))
	}
	for _, w := range tables.Weapons {
		if w.Texture != "" {
			r.RegisterImage(w.Texture, assets.Texture(w.Texture, assets.KindSprite, texW*2, texH*2))
		}
	}
	logger.Log.WithFields(logrus.Fields{"textures": r.Len()}).Debug("textures loaded")
}
