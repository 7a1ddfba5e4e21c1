package entity

// LabelUsage consumo diurno/nocturno de una etiqueta (fecha) de un cliente.
type LabelUsage struct {
	Label     string
	Daytime   int64
	Nighttime int64
}

// UsageSummary desglose por etiqueta más los totales del cliente.
// Labels mantiene el orden de primera aparición en el archivo.
type UsageSummary struct {
	Labels         []LabelUsage
	DaytimeTotal   int64
	NighttimeTotal int64
}
