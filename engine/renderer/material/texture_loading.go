package material

import "github.com/Carmen-Shannon/lenticular/common"

// AsyncTextureLoader is the part of a loader LoadTextures needs. engine/loader.Loader satisfies it.
type AsyncTextureLoader interface {
	LoadAsync(path string, cb func(*common.TextureStagingData, error))
}

// LoadTextures starts a load for every slot in paths and stages each image on m as it arrives. It returns
// immediately. A failed load is logged at warn level and the slot keeps its placeholder; there is no retry.
//
// Parameters:
//   - l: the loader that decodes on its own goroutines
//   - m: the material receiving the images
//   - paths: image path per slot; empty paths are skipped
func LoadTextures(l AsyncTextureLoader, m Material, paths map[TextureSlot]string) {
	for slot, path := range paths {
		if path == "" {
			continue
		}
		l.LoadAsync(path, func(data *common.TextureStagingData, err error) {
			if err == nil && data == nil {
				err = ErrInvalidTexture
			}
			if err == nil {
				err = m.SetTexture(slot, *data)
			}
			if err != nil {
				common.Logger().Warn("texture load failed, keeping placeholder", "slot", slot.String(), "path", path, "error", err)
			}
		})
	}
}
