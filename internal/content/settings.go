package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/editfolio/editfolio-backend/internal/store"
)

// settingsDefaults is the hardcoded display copy used when a key is absent
// from the stored document. The rendering layer receives a fully populated
// map either way.
var settingsDefaults = store.Fields{
	"heroTagline":   "Video Editor & Storyteller",
	"heroTitle":     "Crafting Visual Stories",
	"heroSubtitle":  "I transform raw footage into compelling stories.",
	"servicesTitle": "What I Offer",
	"skillsTitle":   "Technical Expertise",
	"footerName":    "Editfolio",
	"footerTagline": "Crafted with passion.",
}

// GetSiteSettings reads the singleton settings document and overlays it on
// the defaults. A missing document is not an error; it simply yields the
// defaults.
func (a *Accessor) GetSiteSettings(ctx context.Context) (store.Fields, error) {
	out := settingsDefaults.Clone()
	stored, err := a.store.GetOnce(ctx, SettingsCollection, SettingsDocumentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// SaveSiteSettings merge-writes the singleton settings document. Settings
// carry no timestamps and no required fields.
func (a *Accessor) SaveSiteSettings(ctx context.Context, settings store.Fields) error {
	fields := settings.Clone()
	delete(fields, "id")
	if _, err := a.store.Upsert(ctx, SettingsCollection, SettingsDocumentID, fields); err != nil {
		return fmt.Errorf("save site settings: %w", err)
	}
	return nil
}
