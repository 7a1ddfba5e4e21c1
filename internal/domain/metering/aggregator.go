package metering

import "github.com/tsvetanka/ERP-Billing/internal/domain/entity"

// Clasificación fija por posición: los dos intervalos centrales son diurnos, los extremos nocturnos.
var daytimeSlots = [entity.ReadingsPerRecord]bool{false, true, true, false}

// Split devuelve el consumo diurno y nocturno de un registro.
func Split(rec entity.UsageRecord) (daytime, nighttime int64) {
	for i, v := range rec.Readings {
		if daytimeSlots[i] {
			daytime += v
		} else {
			nighttime += v
		}
	}
	return daytime, nighttime
}

// Aggregate pliega los registros de un cliente en un UsageSummary.
// Etiquetas repetidas se suman sobre la primera aparición; los totales no dependen de esa política.
func Aggregate(records []entity.UsageRecord) entity.UsageSummary {
	var summary entity.UsageSummary
	index := make(map[string]int, len(records))

	for _, rec := range records {
		day, night := Split(rec)
		summary.DaytimeTotal += day
		summary.NighttimeTotal += night

		if i, ok := index[rec.Label]; ok {
			summary.Labels[i].Daytime += day
			summary.Labels[i].Nighttime += night
			continue
		}
		index[rec.Label] = len(summary.Labels)
		summary.Labels = append(summary.Labels, entity.LabelUsage{
			Label:     rec.Label,
			Daytime:   day,
			Nighttime: night,
		})
	}
	return summary
}
