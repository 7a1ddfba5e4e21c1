package entity

import "strings"

// QualityCode indica la calidad de la lectura del medidor.
type QualityCode string

const (
	QualityActual    QualityCode = "A" // lectura real, facturable
	QualityEstimated QualityCode = "E" // lectura estimada, excluida de la facturación
)

// ReadingsPerRecord número fijo de intervalos por registro.
const ReadingsPerRecord = 4

// UsageRecord registro de consumo validado: cliente, etiqueta (fecha), cuatro lecturas y código de calidad.
type UsageRecord struct {
	CustomerID string
	Label      string
	Readings   [ReadingsPerRecord]int64
	Quality    QualityCode
}

// RawRecord campos tal cual se leyeron del archivo, sin interpretar.
type RawRecord []string

// String reconstruye la línea original separada por comas.
func (r RawRecord) String() string {
	return strings.Join(r, ",")
}

// RejectedRecord registro que no pasó la validación, con su línea (base 1) y el motivo.
type RejectedRecord struct {
	Line   int
	Fields RawRecord
	Reason string
}

// RecordSet resultado de cargar el archivo de consumos.
// CustomerOrder conserva el orden de primera aparición de cada cliente en Valid.
type RecordSet struct {
	Valid         map[string][]UsageRecord
	CustomerOrder []string
	Invalid       []RejectedRecord
	Estimated     []RawRecord
}

// NewRecordSet construye un RecordSet vacío listo para acumular.
func NewRecordSet() RecordSet {
	return RecordSet{Valid: make(map[string][]UsageRecord)}
}

// AddValid agrega un registro facturable preservando el orden del archivo.
func (s *RecordSet) AddValid(rec UsageRecord) {
	if _, ok := s.Valid[rec.CustomerID]; !ok {
		s.CustomerOrder = append(s.CustomerOrder, rec.CustomerID)
	}
	s.Valid[rec.CustomerID] = append(s.Valid[rec.CustomerID], rec)
}

// InvalidRaw devuelve solo los campos crudos de los registros rechazados.
func (s RecordSet) InvalidRaw() []RawRecord {
	out := make([]RawRecord, 0, len(s.Invalid))
	for _, r := range s.Invalid {
		out = append(out, r.Fields)
	}
	return out
}

// ValidCount total de registros facturables.
func (s RecordSet) ValidCount() int {
	n := 0
	for _, recs := range s.Valid {
		n += len(recs)
	}
	return n
}
