package defaults

import "vlosev/teamops-app/internal/domain"

// resolveEquipment builds the kit list. It starts from the per-type baseline
// set, narrows to what the facility actually has on site when availability
// data covers the resolved date and time, then narrows again to the coach's
// preferred equipment. Both narrowing steps are guarded: an intersection
// that would empty the set is skipped, so the resolved list is never empty.
func resolveEquipment(ctx Context, acc *SmartDefaults) []Reasoning {
	set := baselineEquipmentFor(acc.Type)
	var reason *Reasoning

	if fac := facilityFor(ctx, acc); fac != nil && slotAvailableAt(fac.Slots, acc.StartTime) {
		if inter := intersect(set, fac.Equipment); len(inter) > 0 {
			set = inter
			reason = &Reasoning{
				Field:      FieldEquipment,
				Reason:     "Matched to equipment available at the facility",
				Confidence: 80,
				Source:     SourceAvailability,
			}
		}
	}

	if ctx.Profile != nil && len(ctx.Profile.PreferredEquipment) > 0 {
		if inter := intersect(set, ctx.Profile.PreferredEquipment); len(inter) > 0 {
			set = inter
			reason = &Reasoning{
				Field:      FieldEquipment,
				Reason:     "Narrowed to your preferred equipment",
				Confidence: 85,
				Source:     SourcePreferences,
			}
		}
	}

	acc.Equipment = set
	if reason == nil {
		return nil
	}
	return []Reasoning{*reason}
}

// facilityFor finds availability data for the resolved date, nil if none.
func facilityFor(ctx Context, acc *SmartDefaults) *domain.FacilityDay {
	for i := range ctx.Facility {
		if dateOnly(ctx.Facility[i].Date).Equal(acc.Date) {
			return &ctx.Facility[i]
		}
	}
	return nil
}

func slotAvailableAt(slots []domain.FacilitySlot, t string) bool {
	for i := range slots {
		if slots[i].Available && slots[i].Covers(t) {
			return true
		}
	}
	return false
}

// intersect returns the members of a that also occur in b, preserving a's
// order. Comparison is exact string match.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}
