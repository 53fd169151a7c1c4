package adapt

import (
	"fmt"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

func init() {
	Register(schema.KindPositionMapping, normalizePositionMapping)
}

// normalizePositionMapping handles drag-categorize input: draggable items
// each declare a category, and the solution groups them by zone. Zones may be
// listed explicitly or derived from the distinct categories in input order.
func normalizePositionMapping(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindPositionMapping)

	zoneByLabel := map[string]string{}
	for i, it := range itemsOf(raw, "zones", "categories", "groups") {
		var z schema.Zone
		if it.fields == nil {
			z = schema.Zone{ID: fmt.Sprintf("z%d", i+1), Label: it.text}
		} else {
			z = schema.Zone{ID: it.str("id", "zoneId"), Label: it.str("label", "name", "title", "content", "text")}
			if z.ID == "" {
				z.ID = fmt.Sprintf("z%d", i+1)
			}
		}
		d.Zones = append(d.Zones, z)
		if z.Label != "" {
			zoneByLabel[z.Label] = z.ID
		}
		zoneByLabel[z.ID] = z.ID
	}

	positions := map[string][]string{}
	for i, it := range itemsOf(raw, "items", "elements", "draggables", "options") {
		el := elementOf(it, i)
		d.Elements = append(d.Elements, el)

		cat := it.str("category", "zone", "group", "target")
		zoneID, ok := zoneByLabel[cat]
		if !ok && cat != "" {
			// category named inline without a zones list: mint a zone for it
			zoneID = fmt.Sprintf("z%d", len(d.Zones)+1)
			d.Zones = append(d.Zones, schema.Zone{ID: zoneID, Label: cat})
			zoneByLabel[cat] = zoneID
		}
		if zoneID != "" {
			positions[zoneID] = append(positions[zoneID], el.ID)
		}
	}
	// distractor zones hold nothing, but the solution still names them so a
	// complete zone map with an empty entry validates as correct
	for _, z := range d.Zones {
		if _, ok := positions[z.ID]; !ok {
			positions[z.ID] = []string{}
		}
	}
	d.Solution.CorrectPositions = positions
	return d, nil
}
