package core

import (
	"github.com/phrazzld/addok/internal/component"
	"github.com/spf13/cast"
)

// GeoJSON renders search results as a FeatureCollection. Results carrying
// "lon" and "lat" attributes get a Point geometry.
func GeoJSON(s *component.Search) (any, error) {
	features := make([]map[string]any, 0, len(s.Results))
	for _, r := range s.Results {
		props := make(map[string]any, len(r.Attributes)+3)
		for k, v := range r.Attributes {
			if k == "lon" || k == "lat" {
				continue
			}
			props[k] = v
		}
		props["id"] = r.ID
		props["score"] = r.Score
		if len(r.Labels) > 0 {
			props["label"] = r.Labels[0]
		}

		feature := map[string]any{
			"type":       "Feature",
			"properties": props,
		}
		if geom, ok := point(r); ok {
			feature["geometry"] = geom
		}
		features = append(features, feature)
	}

	return map[string]any{
		"type":     "FeatureCollection",
		"query":    s.Query,
		"limit":    s.Limit,
		"features": features,
	}, nil
}

func point(r *component.Result) (map[string]any, bool) {
	lon, errLon := cast.ToFloat64E(r.Attributes["lon"])
	lat, errLat := cast.ToFloat64E(r.Attributes["lat"])
	if r.Attributes["lon"] == nil || r.Attributes["lat"] == nil || errLon != nil || errLat != nil {
		return nil, false
	}
	return map[string]any{
		"type":        "Point",
		"coordinates": []float64{lon, lat},
	}, true
}
