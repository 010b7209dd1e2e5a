// Package upload shapes torrent metadata into the upload form each tracker
// expects.
package upload

import (
	"strconv"
	"strings"

	"github.com/breppy/breppy/internal/config"
	"github.com/breppy/breppy/internal/log"
)

// Metadata describes a torrent being uploaded
type Metadata struct {
	// Description is the BBCode body shown on the torrent page
	Description string

	// Category is the tracker category id
	Category int

	// Cover is the cover image URL
	Cover string

	// Tags is the space separated tag list
	Tags string

	Title string
}

// fontReplacer swaps fonts Pbay does not offer for close equivalents.
var fontReplacer = strings.NewReplacer(
	"[font=Aleo]", "[font=Palatino Linotype]",
	"[font=Quantico]", "[font=Microsoft Sans Serif]",
)

// PrepareUpload returns the upload form for tracker, starting from its
// configured payload defaults. The dupe-check marker is dropped and
// duplicates are ignored so the form submits a real upload.
func PrepareUpload(cfg *config.Config, tracker string, meta Metadata) (map[string]string, error) {
	name, err := config.CanonicalName(tracker)
	if err != nil {
		return nil, err
	}
	tc, err := cfg.Tracker(name)
	if err != nil {
		return nil, err
	}

	form := tc.Payload.Form()
	delete(form, "checkonly")
	form["ignoredupes"] = "1"
	form["category"] = strconv.Itoa(meta.Category)
	form["title"] = meta.Title
	form["image"] = meta.Cover

	switch name {
	case config.TrackerEmp, config.TrackerEnt:
		form["taglist"] = meta.Tags
		form["desc"] = meta.Description
	case config.TrackerPbay:
		form["tags"] = meta.Tags
		form["desc"] = fontReplacer.Replace(meta.Description)
	}

	log.Debug("upload").
		Str("tracker", name).
		Str("title", meta.Title).
		Int("category", meta.Category).
		Msg("Prepared upload form")

	return form, nil
}
