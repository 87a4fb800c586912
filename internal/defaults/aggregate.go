package defaults

import (
	"fmt"
	"math"
	"strings"
)

// aggregate finishes the record after all resolvers ran: overall confidence,
// tags and the synthesized display name.
//
// Overall confidence is the rounded arithmetic mean of the reasoning entries
// actually produced. Fields that fell through to a silent baseline
// contribute nothing; a cycle with zero entries (completely empty context)
// defaults to 50.
func aggregate(ctx Context, acc *SmartDefaults) {
	acc.Confidence = overallConfidence(acc.Reasoning)
	acc.Tags = []string{
		string(acc.Type),
		string(acc.Intensity),
		strings.ToLower(acc.Date.Weekday().String()),
	}
	acc.Name = synthesizeName(ctx, acc)
}

func overallConfidence(reasons []Reasoning) int {
	if len(reasons) == 0 {
		return 50
	}
	sum := 0
	for _, r := range reasons {
		sum += r.Confidence
	}
	return int(math.Round(float64(sum) / float64(len(reasons))))
}

// synthesizeName builds "{Team} {Type} - {ShortDate}", e.g.
// "U16 Falcons Strength Training - Mar 15". Deterministic, no I/O. The team
// label falls back to a generic "Team" when no team resolved.
func synthesizeName(ctx Context, acc *SmartDefaults) string {
	team := "Team"
	if len(acc.TeamIDs) > 0 {
		if name := ctx.TeamNames[acc.TeamIDs[0]]; name != "" {
			team = name
		}
	}
	return fmt.Sprintf("%s %s - %s", team, typeDisplayName(acc.Type), acc.Date.Format("Jan 2"))
}
