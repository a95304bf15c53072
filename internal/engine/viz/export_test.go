package viz

import "time"

// SetNow replaces the renderer's clock.
func (r *Renderer) SetNow(now func() time.Time) {
	r.now = now
}
